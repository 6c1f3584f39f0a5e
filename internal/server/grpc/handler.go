package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/dto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStatus maps service errors onto gRPC codes. Validation and lifecycle
// messages are user facing; anything else is reported as internal.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func decode(in *structpb.Struct, v any) error {
	if err := pb.Decode(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	out, err := pb.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) Dashboard(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	d, err := s.promises.Dashboard(ctx)
	if err != nil {
		s.logger.Error(ctx, "dashboard", "error", err)
		return nil, toStatus(err)
	}
	return encode(dto.Dashboard(d))
}

func (s *GRPCServer) GetPromise(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.IDRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, err := s.promises.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(dto.Promise(p))
}

func (s *GRPCServer) CreatePromise(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.CreatePromiseRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, err := s.promises.Create(ctx, dto.CreateInput(&req))
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Created", "id", p.ID)
	return encode(dto.Promise(p))
}

func (s *GRPCServer) CompletePromise(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.IDRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, err := s.promises.Complete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(dto.Promise(p))
}

func (s *GRPCServer) ForfeitPromise(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.IDRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, err := s.promises.Forfeit(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(dto.Promise(p))
}

func (s *GRPCServer) FormatPromise(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.FormatPromiseRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	return encode(dto.Format(s.promises.FormatDraft(ctx, req.Text)))
}

func (s *GRPCServer) RequestSolutions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.SolutionsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	sol, err := s.reframe.RequestSolutions(ctx, req.ID, req.Reason, req.Category)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(dto.Solutions(sol))
}

func (s *GRPCServer) DraftRevision(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.DraftRevisionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	d, err := s.reframe.DraftRevision(ctx, req.ID, req.Reason, req.Category, req.Label, req.SolutionText)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(dto.Revision(d))
}

func (s *GRPCServer) ApplyReframe(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.ApplyReframeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, err := s.reframe.ApplyReframe(ctx, req.ID, req.Name, req.Content, req.Deadline)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Reframed", "replaced", req.ID, "id", p.ID)
	return encode(dto.Promise(p))
}

func (s *GRPCServer) ListCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(&pb.CategoriesResponse{Categories: dto.Categories()})
}
