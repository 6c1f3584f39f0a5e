// Package grpc exposes the promise and reframe services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// PromiseAPI is the part of services.PromiseService the transport uses.
type PromiseAPI interface {
	Create(ctx context.Context, in services.CreateInput) (*models.Promise, error)
	Get(ctx context.Context, id int64) (*models.Promise, error)
	Complete(ctx context.Context, id int64) (*models.Promise, error)
	Forfeit(ctx context.Context, id int64) (*models.Promise, error)
	Dashboard(ctx context.Context) (*services.Dashboard, error)
	FormatDraft(ctx context.Context, raw string) *services.FormatResult
}

// ReframeAPI is the part of services.ReframeService the transport uses.
type ReframeAPI interface {
	RequestSolutions(ctx context.Context, id int64, reason, category string) (*services.Solutions, error)
	DraftRevision(ctx context.Context, id int64, reason, category, label, solutionText string) (*services.RevisionDraft, error)
	ApplyReframe(ctx context.Context, id int64, name, content, deadline string) (*models.Promise, error)
}

type GRPCServer struct {
	address  string
	promises PromiseAPI
	reframe  ReframeAPI
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ps PromiseAPI, rs ReframeAPI) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		promises: ps,
		reframe:  rs,
	}
}

// newServer builds a grpc.Server with the service and health checks registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.requestLogInterceptor))

	pb.RegisterPromiseServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, l net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", l.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(l); err != nil {
		return err
	}

	return nil
}
