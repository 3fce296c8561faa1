package codecrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// MetadataServer is the server API for the jetton metadata codec service.
//
// Requests and replies use protobuf well-known wrapper types carrying JSON or
// BOC bytes, so the service needs no generated code.
//
// Proto definition: metadata.proto.
type MetadataServer interface {
	Build(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Decode(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Read(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

// UnimplementedMetadataServer can be embedded to have forward compatible implementations.
type UnimplementedMetadataServer struct{}

func (UnimplementedMetadataServer) Build(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Build not implemented")
}
func (UnimplementedMetadataServer) Decode(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Decode not implemented")
}
func (UnimplementedMetadataServer) Read(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Read not implemented")
}

// RegisterMetadataServer registers the service on a gRPC server.
func RegisterMetadataServer(s grpc.ServiceRegistrar, srv MetadataServer) {
	s.RegisterService(&Metadata_ServiceDesc, srv)
}

// MetadataClient is the client API for the jetton metadata codec service.
type MetadataClient interface {
	Build(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Decode(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Read(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

const (
	serviceName      = "jetton.codec.v1.Metadata"
	methodBuildFull  = "/" + serviceName + "/Build"
	methodDecodeFull = "/" + serviceName + "/Decode"
	methodReadFull   = "/" + serviceName + "/Read"
)

type metadataClient struct{ cc grpc.ClientConnInterface }

func NewMetadataClient(cc grpc.ClientConnInterface) MetadataClient { return &metadataClient{cc: cc} }

func (c *metadataClient) Build(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodBuildFull, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metadataClient) Decode(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodDecodeFull, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metadataClient) Read(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodReadFull, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Metadata_Build_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetadataServer).Build(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodBuildFull}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MetadataServer).Build(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metadata_Decode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetadataServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDecodeFull}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MetadataServer).Decode(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metadata_Read_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetadataServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadFull}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MetadataServer).Read(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Metadata_ServiceDesc is the grpc.ServiceDesc for the Metadata service.
var Metadata_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*MetadataServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Build", Handler: _Metadata_Build_Handler},
		{MethodName: "Decode", Handler: _Metadata_Decode_Handler},
		{MethodName: "Read", Handler: _Metadata_Read_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "metadata.proto",
}
