package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// promiseAPI is the generated-style client surface, narrowed for tests.
type promiseAPI interface {
	Dashboard(ctx context.Context, opts ...grpc.CallOption) (*pb.DashboardResponse, error)
	GetPromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*pb.Promise, error)
	CreatePromise(ctx context.Context, req *pb.CreatePromiseRequest, opts ...grpc.CallOption) (*pb.Promise, error)
	CompletePromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*pb.Promise, error)
	ForfeitPromise(ctx context.Context, id int64, opts ...grpc.CallOption) (*pb.Promise, error)
	FormatPromise(ctx context.Context, text string, opts ...grpc.CallOption) (*pb.FormatPromiseResponse, error)
	RequestSolutions(ctx context.Context, req *pb.SolutionsRequest, opts ...grpc.CallOption) (*pb.SolutionsResponse, error)
	DraftRevision(ctx context.Context, req *pb.DraftRevisionRequest, opts ...grpc.CallOption) (*pb.DraftRevisionResponse, error)
	ApplyReframe(ctx context.Context, req *pb.ApplyReframeRequest, opts ...grpc.CallOption) (*pb.Promise, error)
	ListCategories(ctx context.Context, opts ...grpc.CallOption) (*pb.CategoriesResponse, error)
}

type healthChecker interface {
	Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      promiseAPI
	health      healthChecker
}

func withRequestID(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.RequestIDHeaderName)) > 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, uuid.NewString())
}

func (s *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx), method, req, reply, cc, opts...)
}

func NewPromiseKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.requestIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPromiseServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Dashboard(ctx context.Context) (*pb.DashboardResponse, error) {
	resp, err := s.client.Dashboard(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetPromise(ctx context.Context, id int64) (*pb.Promise, error) {
	resp, err := s.client.GetPromise(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreatePromise(ctx context.Context, req *pb.CreatePromiseRequest) (*pb.Promise, error) {
	resp, err := s.client.CreatePromise(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CompletePromise(ctx context.Context, id int64) (*pb.Promise, error) {
	resp, err := s.client.CompletePromise(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ForfeitPromise(ctx context.Context, id int64) (*pb.Promise, error) {
	resp, err := s.client.ForfeitPromise(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) FormatPromise(ctx context.Context, text string) (*pb.FormatPromiseResponse, error) {
	resp, err := s.client.FormatPromise(ctx, text)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RequestSolutions(ctx context.Context, req *pb.SolutionsRequest) (*pb.SolutionsResponse, error) {
	resp, err := s.client.RequestSolutions(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DraftRevision(ctx context.Context, req *pb.DraftRevisionRequest) (*pb.DraftRevisionResponse, error) {
	resp, err := s.client.DraftRevision(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ApplyReframe(ctx context.Context, req *pb.ApplyReframeRequest) (*pb.Promise, error) {
	resp, err := s.client.ApplyReframe(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListCategories(ctx context.Context) ([]pb.Category, error) {
	resp, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Categories, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
