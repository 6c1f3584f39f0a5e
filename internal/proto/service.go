package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "promisekeeper.v1.PromiseService"

// Method names.
const (
	MethodDashboard        = "Dashboard"
	MethodGetPromise       = "GetPromise"
	MethodCreatePromise    = "CreatePromise"
	MethodCompletePromise  = "CompletePromise"
	MethodForfeitPromise   = "ForfeitPromise"
	MethodFormatPromise    = "FormatPromise"
	MethodRequestSolutions = "RequestSolutions"
	MethodDraftRevision    = "DraftRevision"
	MethodApplyReframe     = "ApplyReframe"
	MethodListCategories   = "ListCategories"
)

// FullMethod returns "/promisekeeper.v1.PromiseService/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PromiseServiceServer is the server API of the service.
type PromiseServiceServer interface {
	Dashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPromise(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreatePromise(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompletePromise(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ForfeitPromise(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FormatPromise(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestSolutions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DraftRevision(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyReframe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(PromiseServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PromiseServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PromiseServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PromiseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodDashboard, Handler: unaryHandler(MethodDashboard, PromiseServiceServer.Dashboard)},
		{MethodName: MethodGetPromise, Handler: unaryHandler(MethodGetPromise, PromiseServiceServer.GetPromise)},
		{MethodName: MethodCreatePromise, Handler: unaryHandler(MethodCreatePromise, PromiseServiceServer.CreatePromise)},
		{MethodName: MethodCompletePromise, Handler: unaryHandler(MethodCompletePromise, PromiseServiceServer.CompletePromise)},
		{MethodName: MethodForfeitPromise, Handler: unaryHandler(MethodForfeitPromise, PromiseServiceServer.ForfeitPromise)},
		{MethodName: MethodFormatPromise, Handler: unaryHandler(MethodFormatPromise, PromiseServiceServer.FormatPromise)},
		{MethodName: MethodRequestSolutions, Handler: unaryHandler(MethodRequestSolutions, PromiseServiceServer.RequestSolutions)},
		{MethodName: MethodDraftRevision, Handler: unaryHandler(MethodDraftRevision, PromiseServiceServer.DraftRevision)},
		{MethodName: MethodApplyReframe, Handler: unaryHandler(MethodApplyReframe, PromiseServiceServer.ApplyReframe)},
		{MethodName: MethodListCategories, Handler: unaryHandler(MethodListCategories, PromiseServiceServer.ListCategories)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "promisekeeper/v1/promisekeeper.proto",
}

func RegisterPromiseServiceServer(s grpc.ServiceRegistrar, srv PromiseServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// PromiseServiceClient is a typed client for the service.
type PromiseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPromiseServiceClient(cc grpc.ClientConnInterface) *PromiseServiceClient {
	return &PromiseServiceClient{cc: cc}
}

func (c *PromiseServiceClient) invoke(ctx context.Context, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return err
	}
	return Decode(out, resp)
}

func (c *PromiseServiceClient) Dashboard(ctx context.Context, opts ...grpc.CallOption) (*DashboardResponse, error) {
	out := &DashboardResponse{}
	return out, c.invoke(ctx, MethodDashboard, Empty{}, out, opts...)
}

func (c *PromiseServiceClient) GetPromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*Promise, error) {
	out := &Promise{}
	return out, c.invoke(ctx, MethodGetPromise, IDRequest{ID: id}, out, opts...)
}

func (c *PromiseServiceClient) CreatePromise(ctx context.Context, req *CreatePromiseRequest, opts ...grpc.CallOption) (*Promise, error) {
	out := &Promise{}
	return out, c.invoke(ctx, MethodCreatePromise, req, out, opts...)
}

func (c *PromiseServiceClient) CompletePromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*Promise, error) {
	out := &Promise{}
	return out, c.invoke(ctx, MethodCompletePromise, IDRequest{ID: id}, out, opts...)
}

func (c *PromiseServiceClient) ForfeitPromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*Promise, error) {
	out := &Promise{}
	return out, c.invoke(ctx, MethodForfeitPromise, IDRequest{ID: id}, out, opts...)
}

func (c *PromiseServiceClient) FormatPromise(ctx context.Context, text string, opts ...grpc.CallOption) (*FormatPromiseResponse, error) {
	out := &FormatPromiseResponse{}
	return out, c.invoke(ctx, MethodFormatPromise, FormatPromiseRequest{Text: text}, out, opts...)
}

func (c *PromiseServiceClient) RequestSolutions(ctx context.Context, req *SolutionsRequest, opts ...grpc.CallOption) (*SolutionsResponse, error) {
	out := &SolutionsResponse{}
	return out, c.invoke(ctx, MethodRequestSolutions, req, out, opts...)
}

func (c *PromiseServiceClient) DraftRevision(ctx context.Context, req *DraftRevisionRequest, opts ...grpc.CallOption) (*DraftRevisionResponse, error) {
	out := &DraftRevisionResponse{}
	return out, c.invoke(ctx, MethodDraftRevision, req, out, opts...)
}

func (c *PromiseServiceClient) ApplyReframe(ctx context.Context, req *ApplyReframeRequest, opts ...grpc.CallOption) (*Promise, error) {
	out := &Promise{}
	return out, c.invoke(ctx, MethodApplyReframe, req, out, opts...)
}

func (c *PromiseServiceClient) ListCategories(ctx context.Context, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	out := &CategoriesResponse{}
	return out, c.invoke(ctx, MethodListCategories, Empty{}, out, opts...)
}
