package grpcstore

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/paint/art"
	"xdao.co/paint/storage"
	"xdao.co/paint/storage/localfs"
	"xdao.co/paint/storage/memory"
	"xdao.co/paint/storage/testkit"
)

func serve(t *testing.T, backend storage.Store) *Client {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterTokenStoreServer(srv, &Server{Store: backend})
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	c := NewClient(cc)
	c.Timeout = 2 * time.Second
	return c
}

func TestGRPCStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) storage.Store {
		return serve(t, memory.New())
	})
}

func TestGRPCStore_LocalFS_RoundTrip(t *testing.T) {
	backend, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	client := serve(t, backend)

	want := testkit.Fixture(t, 77)
	id, err := client.Save(want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	head, err := backend.Head(77)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if !head.Equals(id) {
		t.Fatalf("server head %s, client cid %s", head, id)
	}
	if !client.Has(77) {
		t.Fatalf("Has: expected true")
	}
	if _, err := client.Load(78); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load missing: got %v want ErrNotFound", err)
	}
}

func TestGRPCStore_ServerRejectsMalformed(t *testing.T) {
	srv := &Server{Store: memory.New()}
	_, err := srv.Save(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error for empty record")
	}
	if got := mapRPC(err); !errors.Is(got, storage.ErrMalformed) {
		t.Fatalf("mapRPC: got %v want ErrMalformed", got)
	}
}

func TestGRPCStore_RejectsUnacceptedArt(t *testing.T) {
	bad := testkit.Fixture(t, 5)
	bad.Objects = append(bad.Objects, art.Packed{})

	backend := memory.New()
	if _, err := backend.Save(bad); err != nil {
		t.Fatal(err)
	}
	client := serve(t, backend)

	if _, err := client.Load(5); !errors.Is(err, storage.ErrMalformed) {
		t.Fatalf("Load: got %v want ErrMalformed", err)
	}

	bad.TokenID = 6
	if _, err := client.Save(bad); !errors.Is(err, storage.ErrMalformed) {
		t.Fatalf("Save: got %v want ErrMalformed", err)
	}
	if backend.Has(6) {
		t.Fatalf("server stored a rejected record")
	}
}
