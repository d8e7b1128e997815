package discovery

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"

	"github.com/oggyb/muzz-discovery/internal/proto/codec"
)

const (
	DiscoveryService_Discover_FullMethodName     = "/muzz.discovery.DiscoveryService/Discover"
	DiscoveryService_RefillQueue_FullMethodName  = "/muzz.discovery.DiscoveryService/RefillQueue"
	DiscoveryService_ResetSession_FullMethodName = "/muzz.discovery.DiscoveryService/ResetSession"
)

// Client API
type DiscoveryServiceClient interface {
	Discover(ctx context.Context, in *DiscoverRequest, opts ...grpc.CallOption) (*DiscoverResponse, error)
	RefillQueue(ctx context.Context, in *RefillQueueRequest, opts ...grpc.CallOption) (*RefillQueueResponse, error)
	ResetSession(ctx context.Context, in *ResetSessionRequest, opts ...grpc.CallOption) (*ResetSessionResponse, error)
}

type discoveryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDiscoveryServiceClient(cc grpc.ClientConnInterface) DiscoveryServiceClient {
	return &discoveryServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

func (c *discoveryServiceClient) Discover(ctx context.Context, in *DiscoverRequest, opts ...grpc.CallOption) (*DiscoverResponse, error) {
	out := new(DiscoverResponse)
	err := c.cc.Invoke(ctx, DiscoveryService_Discover_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *discoveryServiceClient) RefillQueue(ctx context.Context, in *RefillQueueRequest, opts ...grpc.CallOption) (*RefillQueueResponse, error) {
	out := new(RefillQueueResponse)
	err := c.cc.Invoke(ctx, DiscoveryService_RefillQueue_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *discoveryServiceClient) ResetSession(ctx context.Context, in *ResetSessionRequest, opts ...grpc.CallOption) (*ResetSessionResponse, error) {
	out := new(ResetSessionResponse)
	err := c.cc.Invoke(ctx, DiscoveryService_ResetSession_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Server API
type DiscoveryServiceServer interface {
	Discover(context.Context, *DiscoverRequest) (*DiscoverResponse, error)
	RefillQueue(context.Context, *RefillQueueRequest) (*RefillQueueResponse, error)
	ResetSession(context.Context, *ResetSessionRequest) (*ResetSessionResponse, error)
}

type UnimplementedDiscoveryServiceServer struct{}

func (UnimplementedDiscoveryServiceServer) Discover(context.Context, *DiscoverRequest) (*DiscoverResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Discover not implemented")
}
func (UnimplementedDiscoveryServiceServer) RefillQueue(context.Context, *RefillQueueRequest) (*RefillQueueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefillQueue not implemented")
}
func (UnimplementedDiscoveryServiceServer) ResetSession(context.Context, *ResetSessionRequest) (*ResetSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetSession not implemented")
}

func RegisterDiscoveryServiceServer(s grpc.ServiceRegistrar, srv DiscoveryServiceServer) {
	s.RegisterService(&DiscoveryService_ServiceDesc, srv)
}

func _DiscoveryService_Discover_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DiscoverRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiscoveryServiceServer).Discover(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiscoveryService_Discover_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiscoveryServiceServer).Discover(ctx, req.(*DiscoverRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DiscoveryService_RefillQueue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RefillQueueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiscoveryServiceServer).RefillQueue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiscoveryService_RefillQueue_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiscoveryServiceServer).RefillQueue(ctx, req.(*RefillQueueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DiscoveryService_ResetSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResetSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiscoveryServiceServer).ResetSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiscoveryService_ResetSession_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiscoveryServiceServer).ResetSession(ctx, req.(*ResetSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var DiscoveryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "muzz.discovery.DiscoveryService",
	HandlerType: (*DiscoveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Discover", Handler: _DiscoveryService_Discover_Handler},
		{MethodName: "RefillQueue", Handler: _DiscoveryService_RefillQueue_Handler},
		{MethodName: "ResetSession", Handler: _DiscoveryService_ResetSession_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "discovery.proto",
}
