package httpapi

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/dto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

var promiseTypes = []models.PromiseType{models.PromiseTypeSelf, models.PromiseTypeOthers, models.PromiseTypeWorld}

type createForm struct {
	Name         string
	PromiseType  string
	Content      string
	Deadline     string
	Participants string
}

type dashboardPage struct {
	Active []proto.Promise
	Score  *int
	Error  string
	Form   createForm
	Types  []models.PromiseType
}

type reframePage struct {
	Promise    *proto.Promise
	Categories []proto.Category
	Reason     string
	Category   string
	Error      string
}

type solutionsPage struct {
	Solutions *proto.SolutionsResponse
	Reason    string
}

type revisionPage struct {
	ID       int64
	Name     string
	Content  string
	Deadline string
	Error    string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error(r.Context(), "render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// pageError turns a service error into a status and a message fit for a page.
func (s *Server) pageError(r *http.Request, err error) (int, string) {
	status, detail := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "internal server error", "path", r.URL.Path, "error", err)
	}
	return status, detail
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, msg string, form createForm) {
	d, err := s.promises.Dashboard(r.Context())
	if err != nil {
		st, detail := s.pageError(r, err)
		http.Error(w, detail, st)
		return
	}
	if form.PromiseType == "" {
		form.PromiseType = string(models.PromiseTypeSelf)
	}
	out := dto.Dashboard(d)
	s.render(w, r, status, "dashboard.html", dashboardPage{
		Active: out.Active,
		Score:  out.Score,
		Error:  msg,
		Form:   form,
		Types:  promiseTypes,
	})
}

func (s *Server) pageDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.promises.Dashboard(r.Context())
	if err != nil {
		st, detail := s.pageError(r, err)
		http.Error(w, detail, st)
		return
	}
	if d.CurrentMissed != nil {
		http.Redirect(w, r, "/reframe", http.StatusSeeOther)
		return
	}
	out := dto.Dashboard(d)
	s.render(w, r, http.StatusOK, "dashboard.html", dashboardPage{
		Active: out.Active,
		Score:  out.Score,
		Form:   createForm{PromiseType: string(models.PromiseTypeSelf)},
		Types:  promiseTypes,
	})
}

// parseForm reads a size-limited form body. On failure it writes the
// response (413 for an oversized body, 400 otherwise) and returns false.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		st, _ := statusFor(fmt.Errorf("%w: malformed form: %w", common.ErrorValidation, err))
		http.Error(w, http.StatusText(st), st)
		return false
	}
	return true
}

func (s *Server) formCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := createForm{
		Name:         r.PostFormValue("name"),
		PromiseType:  r.PostFormValue("promise_type"),
		Content:      r.PostFormValue("content"),
		Deadline:     r.PostFormValue("deadline"),
		Participants: r.PostFormValue("participants"),
	}
	in := services.CreateInput{
		Name:        form.Name,
		PromiseType: form.PromiseType,
		Content:     form.Content,
		Deadline:    form.Deadline,
	}
	if p := strings.TrimSpace(form.Participants); p != "" {
		in.Participants = &p
	}

	if _, err := s.promises.Create(r.Context(), in); err != nil {
		st, msg := s.pageError(r, err)
		s.renderDashboard(w, r, st, msg, form)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) formComplete(w http.ResponseWriter, r *http.Request) {
	s.formTransition(w, r, s.promises.Complete)
}

func (s *Server) formForfeit(w http.ResponseWriter, r *http.Request) {
	s.formTransition(w, r, s.promises.Forfeit)
}

func (s *Server) formTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (*models.Promise, error)) {
	id, err := pathID(r)
	if err == nil {
		_, err = op(r.Context(), id)
	}
	if err != nil {
		st, msg := s.pageError(r, err)
		s.renderDashboard(w, r, st, msg, createForm{})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) pageReframe(w http.ResponseWriter, r *http.Request) {
	d, err := s.promises.Dashboard(r.Context())
	if err != nil {
		st, detail := s.pageError(r, err)
		http.Error(w, detail, st)
		return
	}
	if d.CurrentMissed == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "reframe.html", reframePage{
		Promise:    dto.Promise(d.CurrentMissed),
		Categories: dto.Categories(),
		Category:   string(models.CategoryTimeConstraint),
	})
}

func (s *Server) formSolutions(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	reason := r.PostFormValue("reason")
	category := r.PostFormValue("category")

	id, err := pathID(r)
	var sol *services.Solutions
	if err == nil {
		sol, err = s.reframe.RequestSolutions(r.Context(), id, reason, category)
	}
	if err != nil {
		st, msg := s.pageError(r, err)
		var shown *proto.Promise
		if id > 0 {
			if p, gerr := s.promises.Get(r.Context(), id); gerr == nil {
				shown = dto.Promise(p)
			}
		}
		if shown == nil {
			http.Error(w, msg, st)
			return
		}
		s.render(w, r, st, "reframe.html", reframePage{
			Promise:    shown,
			Categories: dto.Categories(),
			Reason:     reason,
			Category:   category,
			Error:      msg,
		})
		return
	}
	s.render(w, r, http.StatusOK, "solutions.html", solutionsPage{Solutions: dto.Solutions(sol), Reason: reason})
}

func (s *Server) formDraft(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	id, err := pathID(r)
	var d *services.RevisionDraft
	if err == nil {
		d, err = s.reframe.DraftRevision(r.Context(), id,
			r.PostFormValue("reason"), r.PostFormValue("category"),
			r.PostFormValue("label"), r.PostFormValue("solution_text"))
	}
	if err != nil {
		st, msg := s.pageError(r, err)
		http.Error(w, msg, st)
		return
	}
	page := revisionPage{ID: id, Name: d.Name, Content: d.Content, Deadline: d.Deadline}
	if d.Error {
		page.Error = d.Raw
	}
	s.render(w, r, http.StatusOK, "revision.html", page)
}

func (s *Server) formApply(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	page := revisionPage{
		Name:     r.PostFormValue("name"),
		Content:  r.PostFormValue("content"),
		Deadline: r.PostFormValue("deadline"),
	}

	id, err := pathID(r)
	if err == nil {
		page.ID = id
		_, err = s.reframe.ApplyReframe(r.Context(), id, page.Name, page.Content, page.Deadline)
	}
	if err != nil {
		st, msg := s.pageError(r, err)
		page.Error = msg
		s.render(w, r, st, "revision.html", page)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
