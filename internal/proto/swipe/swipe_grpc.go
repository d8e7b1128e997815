package swipe

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"

	"github.com/oggyb/muzz-discovery/internal/proto/codec"
)

const (
	SwipeService_Swipe_FullMethodName        = "/muzz.swipe.SwipeService/Swipe"
	SwipeService_IsMatched_FullMethodName    = "/muzz.swipe.SwipeService/IsMatched"
	SwipeService_ListMatches_FullMethodName  = "/muzz.swipe.SwipeService/ListMatches"
	SwipeService_CountMatches_FullMethodName = "/muzz.swipe.SwipeService/CountMatches"
	SwipeService_ListAdmirers_FullMethodName = "/muzz.swipe.SwipeService/ListAdmirers"
)

// Client API
type SwipeServiceClient interface {
	Swipe(ctx context.Context, in *SwipeRequest, opts ...grpc.CallOption) (*SwipeResponse, error)
	IsMatched(ctx context.Context, in *IsMatchedRequest, opts ...grpc.CallOption) (*IsMatchedResponse, error)
	ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error)
	CountMatches(ctx context.Context, in *CountMatchesRequest, opts ...grpc.CallOption) (*CountMatchesResponse, error)
	ListAdmirers(ctx context.Context, in *ListAdmirersRequest, opts ...grpc.CallOption) (*ListAdmirersResponse, error)
}

type swipeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSwipeServiceClient(cc grpc.ClientConnInterface) SwipeServiceClient {
	return &swipeServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

func (c *swipeServiceClient) Swipe(ctx context.Context, in *SwipeRequest, opts ...grpc.CallOption) (*SwipeResponse, error) {
	out := new(SwipeResponse)
	err := c.cc.Invoke(ctx, SwipeService_Swipe_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *swipeServiceClient) IsMatched(ctx context.Context, in *IsMatchedRequest, opts ...grpc.CallOption) (*IsMatchedResponse, error) {
	out := new(IsMatchedResponse)
	err := c.cc.Invoke(ctx, SwipeService_IsMatched_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *swipeServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	out := new(ListMatchesResponse)
	err := c.cc.Invoke(ctx, SwipeService_ListMatches_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *swipeServiceClient) CountMatches(ctx context.Context, in *CountMatchesRequest, opts ...grpc.CallOption) (*CountMatchesResponse, error) {
	out := new(CountMatchesResponse)
	err := c.cc.Invoke(ctx, SwipeService_CountMatches_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *swipeServiceClient) ListAdmirers(ctx context.Context, in *ListAdmirersRequest, opts ...grpc.CallOption) (*ListAdmirersResponse, error) {
	out := new(ListAdmirersResponse)
	err := c.cc.Invoke(ctx, SwipeService_ListAdmirers_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Server API
type SwipeServiceServer interface {
	Swipe(context.Context, *SwipeRequest) (*SwipeResponse, error)
	IsMatched(context.Context, *IsMatchedRequest) (*IsMatchedResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
	CountMatches(context.Context, *CountMatchesRequest) (*CountMatchesResponse, error)
	ListAdmirers(context.Context, *ListAdmirersRequest) (*ListAdmirersResponse, error)
}

type UnimplementedSwipeServiceServer struct{}

func (UnimplementedSwipeServiceServer) Swipe(context.Context, *SwipeRequest) (*SwipeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Swipe not implemented")
}
func (UnimplementedSwipeServiceServer) IsMatched(context.Context, *IsMatchedRequest) (*IsMatchedResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IsMatched not implemented")
}
func (UnimplementedSwipeServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMatches not implemented")
}
func (UnimplementedSwipeServiceServer) CountMatches(context.Context, *CountMatchesRequest) (*CountMatchesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CountMatches not implemented")
}
func (UnimplementedSwipeServiceServer) ListAdmirers(context.Context, *ListAdmirersRequest) (*ListAdmirersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAdmirers not implemented")
}

func RegisterSwipeServiceServer(s grpc.ServiceRegistrar, srv SwipeServiceServer) {
	s.RegisterService(&SwipeService_ServiceDesc, srv)
}

func _SwipeService_Swipe_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SwipeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SwipeServiceServer).Swipe(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SwipeService_Swipe_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SwipeServiceServer).Swipe(ctx, req.(*SwipeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SwipeService_IsMatched_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IsMatchedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SwipeServiceServer).IsMatched(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SwipeService_IsMatched_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SwipeServiceServer).IsMatched(ctx, req.(*IsMatchedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SwipeService_ListMatches_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListMatchesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SwipeServiceServer).ListMatches(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SwipeService_ListMatches_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SwipeServiceServer).ListMatches(ctx, req.(*ListMatchesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SwipeService_CountMatches_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CountMatchesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SwipeServiceServer).CountMatches(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SwipeService_CountMatches_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SwipeServiceServer).CountMatches(ctx, req.(*CountMatchesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SwipeService_ListAdmirers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListAdmirersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SwipeServiceServer).ListAdmirers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SwipeService_ListAdmirers_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SwipeServiceServer).ListAdmirers(ctx, req.(*ListAdmirersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var SwipeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "muzz.swipe.SwipeService",
	HandlerType: (*SwipeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Swipe", Handler: _SwipeService_Swipe_Handler},
		{MethodName: "IsMatched", Handler: _SwipeService_IsMatched_Handler},
		{MethodName: "ListMatches", Handler: _SwipeService_ListMatches_Handler},
		{MethodName: "CountMatches", Handler: _SwipeService_CountMatches_Handler},
		{MethodName: "ListAdmirers", Handler: _SwipeService_ListAdmirers_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "swipe.proto",
}
