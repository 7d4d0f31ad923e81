package grpcstore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service uses protobuf well-known wrapper types so no protoc step is
// needed. Equivalent proto:
//
//	service TokenStore {
//	  rpc Save(google.protobuf.BytesValue) returns (google.protobuf.StringValue); // record -> cid
//	  rpc Load(google.protobuf.UInt64Value) returns (google.protobuf.BytesValue);  // token id -> record
//	  rpc Has(google.protobuf.UInt64Value) returns (google.protobuf.BoolValue);
//	}
const serviceName = "xdao.paint.storage.v1.TokenStore"

// TokenStoreServer is the server API for the TokenStore service.
type TokenStoreServer interface {
	Save(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Load(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error)
}

// UnimplementedTokenStoreServer can be embedded for forward compatibility.
type UnimplementedTokenStoreServer struct{}

func (UnimplementedTokenStoreServer) Save(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Save not implemented")
}
func (UnimplementedTokenStoreServer) Load(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Load not implemented")
}
func (UnimplementedTokenStoreServer) Has(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// RegisterTokenStoreServer registers the service on a gRPC server.
func RegisterTokenStoreServer(s grpc.ServiceRegistrar, srv TokenStoreServer) {
	s.RegisterService(&TokenStore_ServiceDesc, srv)
}

// TokenStoreClient is the client API for the TokenStore service.
type TokenStoreClient interface {
	Save(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Load(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type tokenStoreClient struct{ cc grpc.ClientConnInterface }

func NewTokenStoreClient(cc grpc.ClientConnInterface) TokenStoreClient {
	return &tokenStoreClient{cc: cc}
}

func (c *tokenStoreClient) Save(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Save", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenStoreClient) Load(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Load", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenStoreClient) Has(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Has", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _TokenStore_Save_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenStoreServer).Save(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Save"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenStoreServer).Save(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenStore_Load_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenStoreServer).Load(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Load"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenStoreServer).Load(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenStore_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenStoreServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenStoreServer).Has(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// TokenStore_ServiceDesc is the grpc.ServiceDesc for the TokenStore service.
var TokenStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TokenStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Save", Handler: _TokenStore_Save_Handler},
		{MethodName: "Load", Handler: _TokenStore_Load_Handler},
		{MethodName: "Has", Handler: _TokenStore_Has_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tokenstore.proto",
}
