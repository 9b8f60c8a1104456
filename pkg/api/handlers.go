package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nuss3d/foldserver/pkg/buildinfo"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/httputil"
	"github.com/nuss3d/foldserver/pkg/job"
	"github.com/nuss3d/foldserver/pkg/store"
)

// Job listing bounds.
const (
	DefaultJobsLimit = 20
	MaxJobsLimit     = 200
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// handleNotFound answers unknown paths with a coded error body instead of
// chi's plain-text 404.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, apperr.New(apperr.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleFold(w http.ResponseWriter, r *http.Request) {
	var req job.FoldRequest
	if err := httputil.DecodeJSON(r, &req, int64(s.cfg.MaxN)+bodySlack); err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp, err := s.orch.Fold(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	data, err := s.orch.Result(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteRaw(w, data)
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	meta, err := s.orch.Meta(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meta)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	metas, err := s.orch.Jobs(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if metas == nil {
		metas = []*store.Meta{}
	}
	httputil.WriteJSON(w, http.StatusOK, metas)
}

func parseLimit(v string) (int, error) {
	if v == "" {
		return DefaultJobsLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, apperr.New(apperr.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v)
	}
	return min(n, MaxJobsLimit), nil
}
