package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/dto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid promise id %q", common.ErrorValidation, r.PathValue("id"))
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %w", common.ErrorValidation, err)
	}
	return nil
}

func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.promises.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Dashboard(d))
}

func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	var req proto.CreatePromiseRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	p, err := s.promises.Create(r.Context(), dto.CreateInput(&req))
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/promises/%d", p.ID))
	writeJSON(w, http.StatusCreated, dto.Promise(p))
}

func (s *Server) apiFormat(w http.ResponseWriter, r *http.Request) {
	var req proto.FormatPromiseRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Format(s.promises.FormatDraft(r.Context(), req.Text)))
}

func (s *Server) apiGet(w http.ResponseWriter, r *http.Request) {
	s.apiByID(w, r, s.promises.Get)
}

func (s *Server) apiComplete(w http.ResponseWriter, r *http.Request) {
	s.apiByID(w, r, s.promises.Complete)
}

func (s *Server) apiForfeit(w http.ResponseWriter, r *http.Request) {
	s.apiByID(w, r, s.promises.Forfeit)
}

func (s *Server) apiByID(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (*models.Promise, error)) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	p, err := op(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Promise(p))
}

type currentMissedResponse struct {
	CurrentMissed *proto.Promise   `json:"current_missed"`
	Categories    []proto.Category `json:"categories"`
}

func (s *Server) apiCurrentMissed(w http.ResponseWriter, r *http.Request) {
	d, err := s.promises.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, currentMissedResponse{CurrentMissed: dto.Promise(d.CurrentMissed), Categories: dto.Categories()})
}

func (s *Server) apiSolutions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	var req proto.SolutionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	sol, err := s.reframe.RequestSolutions(r.Context(), id, req.Reason, req.Category)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Solutions(sol))
}

func (s *Server) apiDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	var req proto.DraftRevisionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	d, err := s.reframe.DraftRevision(r.Context(), id, req.Reason, req.Category, req.Label, req.SolutionText)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Revision(d))
}

func (s *Server) apiApply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	var req proto.ApplyReframeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	p, err := s.reframe.ApplyReframe(r.Context(), id, req.Name, req.Content, req.Deadline)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.Promise(p))
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Categories())
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeProblem(w, r, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
