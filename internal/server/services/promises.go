// Package services contains server-side business logic: PromiseService owns
// creation, status transitions and the dashboard sweep; ReframeService turns
// a missed promise into a new one.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/lifecycle"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/promises"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promisekeeper/internal/timex"
)

// ErrInvalidDeadline is returned when deadline text has no positive span.
var ErrInvalidDeadline = fmt.Errorf("%w: Invalid deadline format e.g. 1h 30m", common.ErrorValidation)

// CreateInput is the user-supplied part of a new promise.
type CreateInput struct {
	Name         string
	PromiseType  string
	Content      string
	Deadline     string
	Participants *string
}

// Dashboard is the state produced by one evaluation sweep.
type Dashboard struct {
	Now           int64
	Active        []models.ActivePromise
	CurrentMissed *models.Promise
	// Score is the accountability percentage; nil until something completed
	// or missed.
	Score *int
}

// FormatResult is a parsed FormatNewPromise reply.
type FormatResult struct {
	Raw   string
	Error bool
	Draft collaborator.Draft
}

type PromiseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	formatter   *collaborator.Formatter
	opts        options
}

func NewPromiseService(db *sql.DB, m repomanager.RepositoryManager, f *collaborator.Formatter, opts ...Option) *PromiseService {
	o := buildOptions(opts)
	o.logger = o.logger.With("module", "promises")
	return &PromiseService{db: db, repomanager: m, formatter: f, opts: o}
}

func (s *PromiseService) repo(db dbx.DBTX) promises.Repository {
	return s.repomanager.Promises(db)
}

// validatePromiseFields checks the fields every new record needs and returns
// the parsed deadline span. now is the creation instant; now+span must not
// overflow.
func validatePromiseFields(name, content, deadline string, now int64) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	if strings.TrimSpace(deadline) == "" {
		return 0, fmt.Errorf("%w: deadline is required", common.ErrorValidation)
	}
	span, ok := timex.ParseSpan(deadline)
	if !ok || span > math.MaxInt64-now {
		return 0, ErrInvalidDeadline
	}
	return span, nil
}

// insertWithFingerprint stores p and then rewrites its fingerprint once the
// id is known. Both writes run on repo, which must be bound to a transaction.
func (s *PromiseService) insertWithFingerprint(ctx context.Context, repo promises.Repository, p *models.Promise) error {
	p.Fingerprint = s.opts.hasher.Fingerprint(0, p.CreatedAt, p.Name, string(p.PromiseType), p.Content)
	id, err := repo.Insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	p.Fingerprint = s.opts.hasher.Fingerprint(p.ID, p.CreatedAt, p.Name, string(p.PromiseType), p.Content)
	return repo.Update(ctx, p)
}

// Create validates in and stores a new ACTIVE promise.
func (s *PromiseService) Create(ctx context.Context, in CreateInput) (*models.Promise, error) {
	now := s.opts.now().Unix()
	span, err := validatePromiseFields(in.Name, in.Content, in.Deadline, now)
	if err != nil {
		return nil, err
	}

	p := &models.Promise{
		Name:         strings.TrimSpace(in.Name),
		PromiseType:  models.NormalizePromiseType(in.PromiseType),
		Content:      strings.TrimSpace(in.Content),
		CreatedAt:    now,
		DeadlineAt:   now + span,
		Status:       models.StatusActive,
		Participants: in.Participants,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.insertWithFingerprint(ctx, s.repo(tx), p)
	}); err != nil {
		return nil, err
	}

	s.opts.metrics.PromiseCreated(ctx, string(p.PromiseType))
	s.opts.logger.Info(ctx, "promise created", "id", p.ID, "deadline_at", p.DeadlineAt)
	return p, nil
}

func (s *PromiseService) Get(ctx context.Context, id int64) (*models.Promise, error) {
	return s.repo(s.db).Get(ctx, id)
}

// Complete moves an ACTIVE promise to COMPLETED.
func (s *PromiseService) Complete(ctx context.Context, id int64) (*models.Promise, error) {
	return s.transition(ctx, id, lifecycle.EventComplete)
}

// Forfeit gives up on an ACTIVE promise, making it MISSED.
func (s *PromiseService) Forfeit(ctx context.Context, id int64) (*models.Promise, error) {
	return s.transition(ctx, id, lifecycle.EventForfeit)
}

func (s *PromiseService) transition(ctx context.Context, id int64, ev lifecycle.Event) (*models.Promise, error) {
	out, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Promise, error) {
		repo := s.repo(tx)
		p, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next, err := lifecycle.Transition(p.Status, ev)
		if err != nil {
			return nil, err
		}
		p.Status = next
		if err := repo.Update(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	s.opts.metrics.Transitioned(ctx, string(out.Status), string(ev))
	s.opts.logger.Info(ctx, "promise transitioned", "id", id, "event", ev, "status", out.Status)
	return out, nil
}

// Dashboard runs the evaluation sweep: overdue ACTIVE promises become MISSED,
// the current missed promise is selected and the remaining ACTIVE promises
// are returned with their time left. Everything happens in one transaction.
func (s *PromiseService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.opts.now().Unix()
	d := &Dashboard{Now: now}
	var expired int

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		active, err := repo.ListByStatus(ctx, models.StatusActive)
		if err != nil {
			return err
		}

		res := lifecycle.Sweep(active, now)
		for i := range res.Expired {
			if err := repo.Update(ctx, &res.Expired[i]); err != nil {
				return err
			}
		}
		expired = len(res.Expired)
		d.Active = res.Active

		missed, err := repo.ListByStatus(ctx, models.StatusMissed)
		if err != nil {
			return err
		}
		d.CurrentMissed = lifecycle.SelectCurrentMissed(missed)

		counts, err := repo.CountByStatus(ctx)
		if err != nil {
			return err
		}
		if score, ok := lifecycle.AccountabilityScore(counts[models.StatusCompleted], counts[models.StatusMissed]); ok {
			d.Score = &score
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := 0; i < expired; i++ {
		s.opts.metrics.Transitioned(ctx, string(models.StatusMissed), string(lifecycle.EventExpire))
	}
	if expired > 0 {
		s.opts.logger.Info(ctx, "sweep expired promises", "count", expired)
	}
	return d, nil
}

// FormatDraft asks the collaborator to turn free text into creation fields.
func (s *PromiseService) FormatDraft(ctx context.Context, raw string) *FormatResult {
	start := time.Now()
	reply := s.formatter.FormatNewPromise(ctx, raw)
	failed := collaborator.IsErrorReply(reply)
	s.opts.metrics.CollaboratorCall(ctx, "create", time.Since(start), failed)

	if failed {
		return &FormatResult{Raw: reply, Error: true}
	}
	return &FormatResult{Raw: reply, Draft: collaborator.ParseDraft(reply)}
}
