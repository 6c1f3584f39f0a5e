package client

import (
	"context"

	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Dashboard(ctx context.Context) (*pb.DashboardResponse, error)
	GetPromise(ctx context.Context, id int64) (*pb.Promise, error)
	CreatePromise(ctx context.Context, req *pb.CreatePromiseRequest) (*pb.Promise, error)
	CompletePromise(ctx context.Context, id int64) (*pb.Promise, error)
	ForfeitPromise(ctx context.Context, id int64) (*pb.Promise, error)
	FormatPromise(ctx context.Context, text string) (*pb.FormatPromiseResponse, error)
	RequestSolutions(ctx context.Context, req *pb.SolutionsRequest) (*pb.SolutionsResponse, error)
	DraftRevision(ctx context.Context, req *pb.DraftRevisionRequest) (*pb.DraftRevisionResponse, error)
	ApplyReframe(ctx context.Context, req *pb.ApplyReframeRequest) (*pb.Promise, error)
	ListCategories(ctx context.Context) ([]pb.Category, error)
}
