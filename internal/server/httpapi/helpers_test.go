package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
)

type fakePromises struct {
	dashboard *services.Dashboard
	dashErr   error

	created   []services.CreateInput
	createErr error

	completed []int64
	forfeited []int64
	transErr  error

	panicOnGet bool
}

func (f *fakePromises) Create(_ context.Context, in services.CreateInput) (*models.Promise, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Promise{ID: int64(len(f.created)), Name: in.Name, Content: in.Content, PromiseType: models.NormalizePromiseType(in.PromiseType), Status: models.StatusActive, Participants: in.Participants}, nil
}

func (f *fakePromises) Get(_ context.Context, id int64) (*models.Promise, error) {
	if f.panicOnGet {
		panic("boom")
	}
	if id == 404 {
		return nil, common.ErrorNotFound
	}
	return &models.Promise{ID: id, Name: "Gym", Status: models.StatusMissed}, nil
}

func (f *fakePromises) Complete(_ context.Context, id int64) (*models.Promise, error) {
	if f.transErr != nil {
		return nil, f.transErr
	}
	f.completed = append(f.completed, id)
	return &models.Promise{ID: id, Status: models.StatusCompleted}, nil
}

func (f *fakePromises) Forfeit(_ context.Context, id int64) (*models.Promise, error) {
	if f.transErr != nil {
		return nil, f.transErr
	}
	f.forfeited = append(f.forfeited, id)
	return &models.Promise{ID: id, Status: models.StatusMissed}, nil
}

func (f *fakePromises) Dashboard(context.Context) (*services.Dashboard, error) {
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	if f.dashboard == nil {
		return &services.Dashboard{Now: 1}, nil
	}
	return f.dashboard, nil
}

func (f *fakePromises) FormatDraft(_ context.Context, raw string) *services.FormatResult {
	return &services.FormatResult{Raw: "Name: " + raw, Draft: collaborator.Draft{Name: raw, PromiseType: models.PromiseTypeSelf, Content: "I promise I will " + raw}}
}

type fakeReframe struct {
	applied  []string
	applyErr error
}

func (f *fakeReframe) RequestSolutions(_ context.Context, id int64, reason, category string) (*services.Solutions, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", common.ErrorValidation)
	}
	cat, err := models.ParseFailureCategory(category)
	if err != nil {
		return nil, err
	}
	return &services.Solutions{
		Promise:  models.Promise{ID: id, Name: "Gym", Status: models.StatusMissed},
		Category: cat,
		Raw:      "raw",
		Options: []collaborator.Solution{
			{Label: "Simplified", Text: "I promise I will walk 10 minutes."},
			{Label: "Alternative", Text: "I promise I will stretch."},
		},
	}, nil
}

func (f *fakeReframe) DraftRevision(_ context.Context, id int64, reason, category, label, solutionText string) (*services.RevisionDraft, error) {
	return &services.RevisionDraft{Revision: collaborator.Revision{Name: "Gym (" + label + ")", Content: solutionText, Deadline: "1d"}, Raw: "raw"}, nil
}

func (f *fakeReframe) ApplyReframe(_ context.Context, id int64, name, content, deadline string) (*models.Promise, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	f.applied = append(f.applied, name, content, deadline)
	return &models.Promise{ID: id + 100, Name: name, Content: content, Status: models.StatusActive}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestHandler(p *fakePromises, r *fakeReframe) http.Handler {
	return NewServer("", logging.Nop(), p, r, fakePinger{}).Handler()
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const formType = "application/x-www-form-urlencoded"

var errDB = errors.New("db error: connection reset")
