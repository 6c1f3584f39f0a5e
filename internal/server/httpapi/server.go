// Package httpapi serves the browser pages and the JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
)

const maxBodyBytes = 1 << 20

// PromiseAPI is the part of services.PromiseService the handlers use.
type PromiseAPI interface {
	Create(ctx context.Context, in services.CreateInput) (*models.Promise, error)
	Get(ctx context.Context, id int64) (*models.Promise, error)
	Complete(ctx context.Context, id int64) (*models.Promise, error)
	Forfeit(ctx context.Context, id int64) (*models.Promise, error)
	Dashboard(ctx context.Context) (*services.Dashboard, error)
	FormatDraft(ctx context.Context, raw string) *services.FormatResult
}

// ReframeAPI is the part of services.ReframeService the handlers use.
type ReframeAPI interface {
	RequestSolutions(ctx context.Context, id int64, reason, category string) (*services.Solutions, error)
	DraftRevision(ctx context.Context, id int64, reason, category, label, solutionText string) (*services.RevisionDraft, error)
	ApplyReframe(ctx context.Context, id int64, name, content, deadline string) (*models.Promise, error)
}

// Pinger reports store health. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address  string
	promises PromiseAPI
	reframe  ReframeAPI
	store    Pinger
	logger   logging.Logger
}

// NewServer creates the HTTP front end. store may be nil.
func NewServer(a string, l logging.Logger, ps PromiseAPI, rs ReframeAPI, store Pinger) *Server {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		promises: ps,
		reframe:  rs,
		store:    store,
	}
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc("GET /dashboard", s.pageDashboard)
	mux.HandleFunc("POST /promises", s.formCreate)
	mux.HandleFunc("POST /promises/{id}/complete", s.formComplete)
	mux.HandleFunc("POST /promises/{id}/forfeit", s.formForfeit)
	mux.HandleFunc("GET /reframe", s.pageReframe)
	mux.HandleFunc("POST /reframe/{id}/solutions", s.formSolutions)
	mux.HandleFunc("POST /reframe/{id}/draft", s.formDraft)
	mux.HandleFunc("POST /reframe/{id}/apply", s.formApply)

	mux.HandleFunc("GET /api/dashboard", s.apiDashboard)
	mux.HandleFunc("POST /api/promises", s.apiCreate)
	mux.HandleFunc("POST /api/promises/format", s.apiFormat)
	mux.HandleFunc("GET /api/promises/{id}", s.apiGet)
	mux.HandleFunc("POST /api/promises/{id}/complete", s.apiComplete)
	mux.HandleFunc("POST /api/promises/{id}/forfeit", s.apiForfeit)
	mux.HandleFunc("GET /api/reframe", s.apiCurrentMissed)
	mux.HandleFunc("POST /api/reframe/{id}/solutions", s.apiSolutions)
	mux.HandleFunc("POST /api/reframe/{id}/draft", s.apiDraft)
	mux.HandleFunc("POST /api/reframe/{id}/apply", s.apiApply)
	mux.HandleFunc("GET /api/categories", s.apiCategories)
	mux.HandleFunc("GET /healthz", s.healthz)

	return s.requestID(s.accessLog(s.recoverer(mux)))
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
