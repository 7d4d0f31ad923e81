// Package grpcstore serves and consumes a storage.Store over gRPC.
package grpcstore

import (
	"context"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/paint/storage"
)

// Client implements storage.Store against a remote TokenStore service.
// Records are verified locally: the returned CID must match the canonical
// encoding, and loaded records must belong to the requested token.
type Client struct {
	cc     *grpc.ClientConn
	client TokenStoreClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.Store = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send and recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		dialOpts = append(dialOpts, grpc.WithBlock())
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewTokenStoreClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Save(r storage.Record) (cid.Cid, error) {
	b := storage.MarshalRecord(r)
	want, err := storage.RecordCID(r)
	if err != nil {
		return cid.Undef, err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Save(ctx, wrapperspb.Bytes(b))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	id, err := cid.Decode(reply.GetValue())
	if err != nil || !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}
	if !id.Equals(want) {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return id, nil
}

func (c *Client) Load(tokenID uint64) (storage.Record, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Load(ctx, wrapperspb.UInt64(tokenID))
	if err != nil {
		return storage.Record{}, mapRPC(err)
	}
	r, err := storage.UnmarshalRecord(reply.GetValue())
	if err != nil {
		return storage.Record{}, err
	}
	if r.TokenID != tokenID {
		return storage.Record{}, storage.ErrMalformed
	}
	// The remote server is not trusted to hold only accepted art.
	if err := storage.CheckRecord(r); err != nil {
		return storage.Record{}, err
	}
	return r, nil
}

func (c *Client) Has(tokenID uint64) bool {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.UInt64(tokenID))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
