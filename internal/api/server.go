package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	logpkg "github.com/vijay-prabhu/campusfind/internal/logger"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/metrics"
)

// Error codes returned in the body of failed requests
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeItemNotFound     = "item_not_found"
	CodeInternalError    = "internal_error"
)

const maxListLimit = 500

// Store is the read and lifecycle side of the item repository
type Store interface {
	Health(ctx context.Context) error
	GetItem(ctx context.Context, id string) (*database.Item, error)
	ListItems(ctx context.Context, opts database.ListOptions) ([]database.Item, error)
	UpdateItemStatus(ctx context.Context, id string, status database.ItemStatus) error
	GetStats(ctx context.Context) (*database.Stats, error)
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the lost-and-found HTTP API
type Server struct {
	store         Store
	finder        *finder.Finder
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server
func NewServer(store Store, f *finder.Finder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:  store,
		finder: f,
		logger: logger,
		errorHandlers: []errorHandler{
			sentinelHandler(database.ErrItemNotFound, http.StatusNotFound, CodeItemNotFound),
			sentinelHandler(database.ErrInvalidStatus, http.StatusBadRequest, CodeValidationFailed),
			sentinelHandler(finder.ErrInvalidKind, http.StatusBadRequest, CodeValidationFailed),
			sentinelHandler(finder.ErrNameRequired, http.StatusBadRequest, CodeValidationFailed),
		},
	}
}

// Router builds the chi router with all middleware and routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/items", s.CreateItem)
		r.Get("/items", s.ListItems)
		r.Get("/items/{id}", s.GetItem)
		r.Get("/items/{id}/matches", s.ItemMatches)
		r.Patch("/items/{id}/status", s.UpdateStatus)
		r.Post("/matches", s.PreviewMatches)
		r.Get("/stats", s.Stats)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Health(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// itemRequest is the body of POST /api/v1/items
type itemRequest struct {
	Kind        match.Kind `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Color       string     `json:"color"`
	Brand       string     `json:"brand"`
	Contact     string     `json:"contact"`
	ReportedAt  *time.Time `json:"reported_at"`
}

func (req itemRequest) toItem() *database.Item {
	item := &database.Item{
		Kind:        req.Kind,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Category:    strings.TrimSpace(req.Category),
		Color:       database.OptionalString(strings.TrimSpace(req.Color)),
		Brand:       database.OptionalString(strings.TrimSpace(req.Brand)),
		Contact:     database.OptionalString(strings.TrimSpace(req.Contact)),
	}
	if req.ReportedAt != nil {
		item.ReportedAt = *req.ReportedAt
	}
	return item
}

// reportResponse pairs a stored item with its matches
type reportResponse struct {
	Item    *database.Item `json:"item"`
	Matches []finder.Match `json:"matches"`
}

// CreateItem handles POST /api/v1/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item := req.toItem()
	matches, err := s.finder.Report(r.Context(), item)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reportResponse{Item: item, Matches: nonNil(matches)})
}

// ListItems handles GET /api/v1/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	items, err := s.store.ListItems(r.Context(), opts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []database.Item{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func listOptionsFromQuery(r *http.Request) (database.ListOptions, error) {
	q := r.URL.Query()
	opts := database.ListOptions{}

	if v := q.Get("kind"); v != "" {
		kind := match.Kind(v)
		if !kind.Valid() {
			return opts, finder.ErrInvalidKind
		}
		opts.Kind = &kind
	}
	if v := q.Get("status"); v != "" {
		status := database.ItemStatus(v)
		if !status.Valid() {
			return opts, database.ErrInvalidStatus
		}
		opts.Status = &status
	}
	if v := q.Get("location"); v != "" {
		opts.Location = &v
	}
	if v := q.Get("category"); v != "" {
		opts.Category = &v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return opts, errors.New("limit must be a non-negative integer")
		}
		opts.Limit = min(limit, maxListLimit)
	}

	return opts, nil
}

// GetItem handles GET /api/v1/items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ItemMatches handles GET /api/v1/items/{id}/matches.
func (s *Server) ItemMatches(w http.ResponseWriter, r *http.Request) {
	item, matches, err := s.finder.Similar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Item: item, Matches: nonNil(matches)})
}

// UpdateStatus handles PATCH /api/v1/items/{id}/status.
func (s *Server) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status database.ItemStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdateItemStatus(r.Context(), id, req.Status); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// previewRequest is the body of POST /api/v1/matches
type previewRequest struct {
	Item     match.Item `json:"item"`
	MinScore *int       `json:"min_score"`
	TopK     *int       `json:"top_k"`
}

// PreviewMatches handles POST /api/v1/matches. Nothing is stored.
func (s *Server) PreviewMatches(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var (
		matches []finder.Match
		err     error
	)
	if req.MinScore == nil && req.TopK == nil {
		matches, err = s.finder.Preview(r.Context(), req.Item)
	} else {
		opts, _ := s.finder.Options(finder.ProfileSearch)
		if req.MinScore != nil {
			opts.MinScore = *req.MinScore
		}
		if req.TopK != nil {
			opts.TopK = *req.TopK
		}
		if req.Item.Kind == "" {
			req.Item.Kind = match.KindLost
		}
		matches, err = s.finder.MatchWith(r.Context(), req.Item, opts)
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": nonNil(matches)})
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func nonNil(matches []finder.Match) []finder.Match {
	if matches == nil {
		return []finder.Match{}
	}
	return matches
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
