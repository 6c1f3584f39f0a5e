package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/archive"
	"github.com/dmitrijs2005/promisekeeper/internal/server/cache"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
)

// fallbackRevisionDeadline is proposed when the collaborator cannot draft one.
const fallbackRevisionDeadline = "24h"

// Solutions is the answer to a solutions request. Raw is always set: it is
// either the generated text or an in-band error reply.
type Solutions struct {
	Promise  models.Promise
	Category models.FailureCategory
	Raw      string
	Error    bool
	Cached   bool
	// Options are the parsed variants; on error they are generic fallbacks.
	Options []collaborator.Solution
}

// RevisionDraft is a proposed replacement for a missed promise.
type RevisionDraft struct {
	collaborator.Revision
	Raw   string
	Error bool
}

type replacement struct {
	old, fresh *models.Promise
}

// ReframeService replaces missed promises with revised ones.
type ReframeService struct {
	db        *sql.DB
	promises  *PromiseService
	formatter *collaborator.Formatter
	opts      options
}

func NewReframeService(p *PromiseService, f *collaborator.Formatter, opts ...Option) *ReframeService {
	o := buildOptions(opts)
	o.logger = o.logger.With("module", "reframe")
	return &ReframeService{db: p.db, promises: p, formatter: f, opts: o}
}

// CurrentMissed runs the sweep and returns the promise to reframe, or nil.
func (s *ReframeService) CurrentMissed(ctx context.Context) (*models.Promise, error) {
	d, err := s.promises.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return d.CurrentMissed, nil
}

func (s *ReframeService) loadMissed(ctx context.Context, id int64) (*models.Promise, error) {
	p, err := s.promises.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusMissed {
		return nil, fmt.Errorf("%w: promise %d is %s, only MISSED promises can be reframed",
			common.ErrorInvalidTransition, id, p.Status)
	}
	return p, nil
}

func parseReasonCategory(reason, category string) (models.FailureCategory, error) {
	if strings.TrimSpace(reason) == "" {
		return "", fmt.Errorf("%w: reason is required", common.ErrorValidation)
	}
	return models.ParseFailureCategory(category)
}

// RequestSolutions asks the collaborator for three revised variants of the
// missed promise id. Collaborator failures are reported in-band.
func (s *ReframeService) RequestSolutions(ctx context.Context, id int64, reason, category string) (*Solutions, error) {
	cat, err := parseReasonCategory(reason, category)
	if err != nil {
		return nil, err
	}
	p, err := s.loadMissed(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &Solutions{Promise: *p, Category: cat}
	key := cache.SolutionKey(p.Fingerprint, reason, string(cat))
	if text, ok := s.opts.cache.Get(ctx, key); ok {
		out.Raw, out.Cached = text, true
		out.Options = collaborator.ParseSolutions(text)
		return out, nil
	}

	start := time.Now()
	out.Raw = s.formatter.RefinePromise(ctx, p.Content, strings.TrimSpace(reason), cat.Label())
	out.Error = collaborator.IsErrorReply(out.Raw)
	s.opts.metrics.CollaboratorCall(ctx, "refine", time.Since(start), out.Error)

	if out.Error {
		s.opts.logger.Warn(ctx, "solutions unavailable, offering fallbacks", "id", id, "reply", out.Raw)
		out.Options = collaborator.ParseSolutions(collaborator.FallbackSolutions(p.Content))
		return out, nil
	}

	s.opts.cache.Set(ctx, key, out.Raw)
	out.Options = collaborator.ParseSolutions(out.Raw)
	return out, nil
}

// DraftRevision asks the collaborator to turn the chosen solution into
// name, content and deadline for the replacing promise. When the collaborator
// fails the draft falls back to the old name, the solution text and a 24h
// deadline so the user can still apply it.
func (s *ReframeService) DraftRevision(ctx context.Context, id int64, reason, category, label, solutionText string) (*RevisionDraft, error) {
	cat, err := parseReasonCategory(reason, category)
	if err != nil {
		return nil, err
	}
	p, err := s.loadMissed(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reply := s.formatter.GenerateUpdatedPromise(ctx, p.Content, strings.TrimSpace(reason), cat.Label(), label)
	failed := collaborator.IsErrorReply(reply)
	s.opts.metrics.CollaboratorCall(ctx, "update", time.Since(start), failed)

	if !failed {
		return &RevisionDraft{Revision: collaborator.ParseRevision(reply), Raw: reply}, nil
	}

	content := strings.TrimSpace(solutionText)
	if content == "" {
		content = p.Content
	}
	return &RevisionDraft{
		Revision: collaborator.Revision{
			Name:     p.Name + " (revised)",
			Content:  content,
			Deadline: fallbackRevisionDeadline,
		},
		Raw:   reply,
		Error: true,
	}, nil
}

// ApplyReframe atomically replaces the MISSED promise id with a new ACTIVE
// one carrying the old promise_type. Nothing is written when validation
// fails.
func (s *ReframeService) ApplyReframe(ctx context.Context, id int64, name, content, deadline string) (*models.Promise, error) {
	now := s.opts.now().Unix()
	span, err := validatePromiseFields(name, content, deadline, now)
	if err != nil {
		return nil, err
	}

	r, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (replacement, error) {
		repo := s.promises.repo(tx)

		old, err := repo.Get(ctx, id)
		if err != nil {
			return replacement{}, err
		}
		if old.Status != models.StatusMissed {
			return replacement{}, fmt.Errorf("%w: promise %d is %s, only MISSED promises can be reframed",
				common.ErrorInvalidTransition, id, old.Status)
		}

		fresh := &models.Promise{
			Name:        strings.TrimSpace(name),
			PromiseType: old.PromiseType,
			Content:     strings.TrimSpace(content),
			CreatedAt:   now,
			DeadlineAt:  now + span,
			Status:      models.StatusActive,
		}
		if s.opts.keepParticipants {
			fresh.Participants = old.Participants
		}

		if err := s.promises.insertWithFingerprint(ctx, repo, fresh); err != nil {
			return replacement{}, err
		}
		if err := repo.Delete(ctx, old.ID); err != nil {
			return replacement{}, err
		}
		return replacement{old: old, fresh: fresh}, nil
	})
	if err != nil {
		return nil, err
	}
	old, fresh := r.old, r.fresh

	s.opts.metrics.Reframed(ctx)
	s.opts.metrics.PromiseCreated(ctx, string(fresh.PromiseType))
	s.opts.logger.Info(ctx, "promise reframed", "old_id", old.ID, "new_id", fresh.ID)

	key, err := s.opts.archiver.Archive(ctx, archive.Record{Replaced: *old, ReplacementID: fresh.ID})
	if err != nil {
		s.opts.logger.Warn(ctx, "archive failed", "old_id", old.ID, "error", err)
	} else if key != "" {
		s.opts.logger.Debug(ctx, "reframed promise archived", "old_id", old.ID, "key", key)
	}

	return fresh, nil
}
