// Package dto converts service results into wire messages shared by the
// gRPC and HTTP transports.
package dto

import (
	"github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
)

func Promise(p *models.Promise) *proto.Promise {
	if p == nil {
		return nil
	}
	return &proto.Promise{
		ID:           p.ID,
		Name:         p.Name,
		PromiseType:  string(p.PromiseType),
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		DeadlineAt:   p.DeadlineAt,
		Status:       string(p.Status),
		Fingerprint:  p.Fingerprint,
		Participants: p.Participants,
	}
}

func ActivePromise(a models.ActivePromise) proto.Promise {
	out := *Promise(&a.Promise)
	out.TimeLeft = a.TimeLeft
	out.TimeLeftSeconds = a.TimeLeftSeconds
	return out
}

func Dashboard(d *services.Dashboard) *proto.DashboardResponse {
	out := &proto.DashboardResponse{
		Now:           d.Now,
		Active:        make([]proto.Promise, 0, len(d.Active)),
		CurrentMissed: Promise(d.CurrentMissed),
		Score:         d.Score,
	}
	for _, a := range d.Active {
		out.Active = append(out.Active, ActivePromise(a))
	}
	return out
}

func CreateInput(req *proto.CreatePromiseRequest) services.CreateInput {
	return services.CreateInput{
		Name:         req.Name,
		PromiseType:  req.PromiseType,
		Content:      req.Content,
		Deadline:     req.Deadline,
		Participants: req.Participants,
	}
}

func Format(r *services.FormatResult) *proto.FormatPromiseResponse {
	return &proto.FormatPromiseResponse{
		Raw:         r.Raw,
		Error:       r.Error,
		Name:        r.Draft.Name,
		PromiseType: string(r.Draft.PromiseType),
		Content:     r.Draft.Content,
	}
}

func Solutions(s *services.Solutions) *proto.SolutionsResponse {
	out := &proto.SolutionsResponse{
		Promise:  *Promise(&s.Promise),
		Category: string(s.Category),
		Raw:      s.Raw,
		Error:    s.Error,
		Cached:   s.Cached,
		Options:  make([]proto.Solution, 0, len(s.Options)),
	}
	for _, o := range s.Options {
		out.Options = append(out.Options, proto.Solution{Label: o.Label, Text: o.Text})
	}
	return out
}

func Revision(r *services.RevisionDraft) *proto.DraftRevisionResponse {
	return &proto.DraftRevisionResponse{
		Name:     r.Name,
		Content:  r.Content,
		Deadline: r.Deadline,
		Raw:      r.Raw,
		Error:    r.Error,
	}
}

// Categories lists the failure categories in menu order.
func Categories() []proto.Category {
	out := make([]proto.Category, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, proto.Category{Name: string(c), Code: c.Code(), Label: c.Label()})
	}
	return out
}
