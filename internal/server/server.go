package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/gitlab"
	"github.com/codecritic/codecritic/internal/review"
	"github.com/codecritic/codecritic/internal/store"
)

// Server is the HTTP boundary around the review engine. It validates the
// submission shape before the pipeline runs; the engine assumes well-formed
// input.
type Server struct {
	engine *review.Engine
	store  store.Store
	gitlab *gitlab.Client
	log    *zap.Logger
}

// New creates a Server. The gitlab client may be nil when no token is
// configured; merge-request posting is then skipped.
func New(engine *review.Engine, st store.Store, gl *gitlab.Client, log *zap.Logger) *Server {
	return &Server{engine: engine, store: st, gitlab: gl, log: log}
}

// Handler returns the route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reviews", s.handleCreateReview)
	mux.HandleFunc("GET /api/reviews", s.handleListReviews)
	mux.HandleFunc("GET /api/reviews/{id}", s.handleGetReview)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe starts serving on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var sub review.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if sub.Language == "" || sub.Code == "" {
		s.writeError(w, http.StatusBadRequest, "language and code are required")
		return
	}
	if sub.Type == "" {
		sub.Type = review.ReviewComprehensive
	}
	if !review.ValidReviewType(sub.Type) {
		s.writeError(w, http.StatusBadRequest, "unknown review type: "+string(sub.Type))
		return
	}

	// The engine never fails; everything past this point produces a result.
	result := s.engine.Review(r.Context(), sub)

	rec := &store.Review{
		Language:   sub.Language,
		ReviewType: sub.Type,
		Code:       sub.Code,
		Result:     result,
	}
	if err := s.store.CreateReview(r.Context(), rec); err != nil {
		s.log.Error("failed to persist review", zap.Error(err))
	}

	if s.gitlab != nil && result.GitLab != nil {
		if err := s.gitlab.PostReview(r.Context(), result); err != nil {
			s.log.Warn("failed to post review to gitlab", zap.Error(err))
		}
	}

	s.writeJSON(w, http.StatusOK, struct {
		ID string `json:"id"`
		*review.Result
	}{ID: rec.ID, Result: result})
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetReview(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

const defaultHistoryLimit = 50

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviews(r.Context(), defaultHistoryLimit)
	if err != nil {
		s.log.Error("failed to list reviews", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	if reviews == nil {
		reviews = []*store.Review{}
	}
	s.writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
