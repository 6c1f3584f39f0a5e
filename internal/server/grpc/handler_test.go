package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakePromises struct {
	createIn  services.CreateInput
	createErr error

	getErr error

	completeErr error

	dashboard *services.Dashboard

	formatted *services.FormatResult
}

func (f *fakePromises) Create(ctx context.Context, in services.CreateInput) (*models.Promise, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Promise{ID: 7, Name: in.Name, PromiseType: models.NormalizePromiseType(in.PromiseType), Content: in.Content, Status: models.StatusActive}, nil
}

func (f *fakePromises) Get(ctx context.Context, id int64) (*models.Promise, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Promise{ID: id, Status: models.StatusActive}, nil
}

func (f *fakePromises) Complete(ctx context.Context, id int64) (*models.Promise, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &models.Promise{ID: id, Status: models.StatusCompleted}, nil
}

func (f *fakePromises) Forfeit(ctx context.Context, id int64) (*models.Promise, error) {
	return &models.Promise{ID: id, Status: models.StatusMissed}, nil
}

func (f *fakePromises) Dashboard(ctx context.Context) (*services.Dashboard, error) {
	if f.dashboard == nil {
		return &services.Dashboard{}, nil
	}
	return f.dashboard, nil
}

func (f *fakePromises) FormatDraft(ctx context.Context, raw string) *services.FormatResult {
	if f.formatted == nil {
		return &services.FormatResult{Raw: raw}
	}
	return f.formatted
}

type fakeReframe struct {
	applyArgs []string
	applyErr  error
}

func (f *fakeReframe) RequestSolutions(ctx context.Context, id int64, reason, category string) (*services.Solutions, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", common.ErrorValidation)
	}
	return &services.Solutions{
		Promise:  models.Promise{ID: id, Status: models.StatusMissed},
		Category: models.CategorySkillGap,
		Raw:      "raw",
		Options:  []collaborator.Solution{{Label: "Simplified", Text: "I promise I will walk."}},
	}, nil
}

func (f *fakeReframe) DraftRevision(ctx context.Context, id int64, reason, category, label, solutionText string) (*services.RevisionDraft, error) {
	return &services.RevisionDraft{Revision: collaborator.Revision{Name: "n", Content: solutionText, Deadline: "2h"}}, nil
}

func (f *fakeReframe) ApplyReframe(ctx context.Context, id int64, name, content, deadline string) (*models.Promise, error) {
	f.applyArgs = []string{name, content, deadline}
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return &models.Promise{ID: id + 1, Name: name, Content: content, Status: models.StatusActive}, nil
}

func newClient(t *testing.T, p *fakePromises, r *fakeReframe) *pb.PromiseServiceClient {
	t.Helper()
	conn := startBufconn(t, NewGRPCServer("", logging.Nop(), p, r))
	return pb.NewPromiseServiceClient(conn)
}

// ---- tests ----

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("%w: bad", common.ErrorValidation), codes.InvalidArgument},
		{fmt.Errorf("get: %w", common.ErrorNotFound), codes.NotFound},
		{common.ErrorInvalidTransition, codes.FailedPrecondition},
		{fmt.Errorf("db error: boom"), codes.Internal},
	}
	for _, tt := range tests {
		if got := status.Code(toStatus(tt.err)); got != tt.want {
			t.Errorf("toStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestToStatus_HidesInternalDetail(t *testing.T) {
	st, _ := status.FromError(toStatus(fmt.Errorf("db error: password=secret")))
	if st.Message() != "internal error" {
		t.Fatalf("internal detail leaked: %q", st.Message())
	}
}

func TestCreatePromise_RoundTrip(t *testing.T) {
	fp := &fakePromises{}
	c := newClient(t, fp, &fakeReframe{})

	who := "Ann"
	got, err := c.CreatePromise(context.Background(), &pb.CreatePromiseRequest{
		Name: "Call mom", PromiseType: "other", Content: "I promise I will call", Deadline: "1d", Participants: &who,
	})
	if err != nil {
		t.Fatalf("CreatePromise: %v", err)
	}
	if got.ID != 7 || got.PromiseType != "others" || got.Status != "ACTIVE" {
		t.Fatalf("unexpected promise: %+v", got)
	}
	if fp.createIn.Deadline != "1d" || fp.createIn.Participants == nil || *fp.createIn.Participants != "Ann" {
		t.Fatalf("input not forwarded: %+v", fp.createIn)
	}
}

func TestCreatePromise_ValidationError(t *testing.T) {
	c := newClient(t, &fakePromises{createErr: services.ErrInvalidDeadline}, &fakeReframe{})

	_, err := c.CreatePromise(context.Background(), &pb.CreatePromiseRequest{Name: "x", Content: "y", Deadline: "soon"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestGetAndComplete_Errors(t *testing.T) {
	c := newClient(t, &fakePromises{getErr: common.ErrorNotFound, completeErr: common.ErrorInvalidTransition}, &fakeReframe{})

	if _, err := c.GetPromise(context.Background(), 1); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := c.CompletePromise(context.Background(), 1); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}
}

func TestForfeit(t *testing.T) {
	c := newClient(t, &fakePromises{}, &fakeReframe{})

	got, err := c.ForfeitPromise(context.Background(), 4)
	if err != nil {
		t.Fatalf("ForfeitPromise: %v", err)
	}
	if got.ID != 4 || got.Status != "MISSED" {
		t.Fatalf("unexpected promise: %+v", got)
	}
}

func TestDashboard(t *testing.T) {
	score := 100
	c := newClient(t, &fakePromises{dashboard: &services.Dashboard{
		Now: 1_700_000_000,
		Active: []models.ActivePromise{{
			Promise:         models.Promise{ID: 2, Status: models.StatusActive, DeadlineAt: 1_700_003_600},
			TimeLeft:        "1h",
			TimeLeftSeconds: 3600,
		}},
		CurrentMissed: &models.Promise{ID: 1, Status: models.StatusMissed},
		Score:         &score,
	}}, &fakeReframe{})

	got, err := c.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if got.Now != 1_700_000_000 || len(got.Active) != 1 || got.Active[0].TimeLeft != "1h" {
		t.Fatalf("unexpected dashboard: %+v", got)
	}
	if got.CurrentMissed == nil || got.CurrentMissed.ID != 1 {
		t.Fatalf("missing current missed: %+v", got.CurrentMissed)
	}
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("unexpected score: %v", got.Score)
	}
}

func TestFormatPromise_ErrorReplyInBand(t *testing.T) {
	c := newClient(t, &fakePromises{formatted: &services.FormatResult{Raw: collaborator.ReplyNoAPIKey, Error: true}}, &fakeReframe{})

	got, err := c.FormatPromise(context.Background(), "walk daily")
	if err != nil {
		t.Fatalf("FormatPromise: %v", err)
	}
	if !got.Error || got.Raw != collaborator.ReplyNoAPIKey {
		t.Fatalf("unexpected reply: %+v", got)
	}
}

func TestReframeFlow(t *testing.T) {
	fr := &fakeReframe{}
	c := newClient(t, &fakePromises{}, fr)
	ctx := context.Background()

	sol, err := c.RequestSolutions(ctx, &pb.SolutionsRequest{ID: 3, Reason: "busy", Category: "7"})
	if err != nil {
		t.Fatalf("RequestSolutions: %v", err)
	}
	if sol.Category != "SKILL_GAP" || len(sol.Options) != 1 || sol.Promise.ID != 3 {
		t.Fatalf("unexpected solutions: %+v", sol)
	}

	if _, err := c.RequestSolutions(ctx, &pb.SolutionsRequest{ID: 3}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	draft, err := c.DraftRevision(ctx, &pb.DraftRevisionRequest{ID: 3, Reason: "busy", Category: "7", Label: "Simplified", SolutionText: "walk"})
	if err != nil {
		t.Fatalf("DraftRevision: %v", err)
	}
	if draft.Content != "walk" || draft.Deadline != "2h" {
		t.Fatalf("unexpected draft: %+v", draft)
	}

	p, err := c.ApplyReframe(ctx, &pb.ApplyReframeRequest{ID: 3, Name: draft.Name, Content: draft.Content, Deadline: draft.Deadline})
	if err != nil {
		t.Fatalf("ApplyReframe: %v", err)
	}
	if p.ID != 4 || p.Status != "ACTIVE" {
		t.Fatalf("unexpected promise: %+v", p)
	}
	if fr.applyArgs[2] != "2h" {
		t.Fatalf("deadline not forwarded: %v", fr.applyArgs)
	}
}

func TestApplyReframe_NotMissed(t *testing.T) {
	c := newClient(t, &fakePromises{}, &fakeReframe{applyErr: fmt.Errorf("%w: promise 3 is ACTIVE", common.ErrorInvalidTransition)})

	_, err := c.ApplyReframe(context.Background(), &pb.ApplyReframeRequest{ID: 3, Name: "n", Content: "c", Deadline: "1h"})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	c := newClient(t, &fakePromises{}, &fakeReframe{})

	got, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(got.Categories) != 7 || got.Categories[0].Code != "1" || got.Categories[6].Name != "SKILL_GAP" {
		t.Fatalf("unexpected categories: %+v", got.Categories)
	}
}
