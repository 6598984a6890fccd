// Package chi exposes the recommendation engine over HTTP using the chi
// router. Handlers are thin: they bind the wire format, call a usecase,
// and translate domain errors to the uniform error payload.
package chi

import (
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/catalog"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/filters"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/request"
	"github.com/kailas-cloud/furnidex/internal/usecase/analytics"
	"github.com/kailas-cloud/furnidex/internal/usecase/describe"
	healthuc "github.com/kailas-cloud/furnidex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/furnidex/internal/usecase/recommend"
	"github.com/kailas-cloud/furnidex/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pagination defaults for the product listing.
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Server holds the HTTP handlers for the public API.
type Server struct {
	catalog       *catalog.Catalog
	recommend     *recommenduc.Service
	analytics     *analytics.Service
	health        *healthuc.Service
	logger        *zap.Logger
	pageSize      int
	maxPageSize   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	cat *catalog.Catalog,
	recommend *recommenduc.Service,
	analyticsSvc *analytics.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:     cat,
		recommend:   recommend,
		analytics:   analyticsSvc,
		health:      health,
		logger:      logger,
		pageSize:    defaultPageSize,
		maxPageSize: maxPageSize,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, ErrorCodeProductNotFound),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrCatalogNotReady, http.StatusServiceUnavailable, ErrorCodeCatalogNotReady),
		sentinelHandler(domain.ErrDimensionMismatch,
			http.StatusInternalServerError, ErrorCodeDimensionMismatch),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrEmbeddingAuthFailed,
			http.StatusBadGateway, ErrorCodeEmbeddingAuthFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError,
			http.StatusBadGateway, ErrorCodeEmbeddingProviderError),
	}
	return s
}

// WithPageSizes overrides the product listing pagination bounds.
func (s *Server) WithPageSizes(def, max int) *Server {
	if def > 0 {
		s.pageSize = def
	}
	if max > 0 {
		s.maxPageSize = max
	}
	return s
}

// Routes mounts every API endpoint on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/", s.Info)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chirouter.Router) {
		r.Post("/recommend", s.Recommend)
		r.Get("/products", s.ListProducts)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/analytics", s.Analytics)
	})
}

// Recommend handles POST /api/v1/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var body RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var f filters.Filters
	if body.Filters != nil {
		f = *body.Filters
	}
	req, err := request.New(body.Query, body.TopK, f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.recommend.Recommend(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]RecommendationItem, len(result.Candidates))
	for i := range result.Candidates {
		items[i] = candidateToItem(&result.Candidates[i])
	}
	writeJSON(w, http.StatusOK, RecommendResponse{
		Query:                req.Query(),
		Recommendations:      items,
		TotalMatches:         len(items),
		LowConfidence:        result.LowConfidence,
		GeneratedDescription: describe.Generate(result.Candidates, req.Query()),
	})
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	var skip, limit int
	limit = s.pageSize

	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "skip", q, &skip); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid skip parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid limit parameter")
		return
	}
	if skip < 0 || limit < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "skip and limit must be non-negative")
		return
	}
	if limit == 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	total := s.catalog.Len()
	lo := skip
	if lo > total {
		lo = total
	}
	hi := lo + limit
	if hi > total {
		hi = total
	}

	items := make([]ProductPayload, 0, hi-lo)
	for i := lo; i < hi; i++ {
		p := s.catalog.At(i)
		items = append(items, productToPayload(&p))
	}
	writeJSON(w, http.StatusOK, ProductListResponse{
		Total:    total,
		Skip:     skip,
		Limit:    limit,
		Products: items,
	})
}

// GetProduct handles GET /api/v1/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")
	p, ok := s.catalog.ByID(id)
	if !ok {
		s.handleDomainError(w, domain.ErrProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, productToPayload(&p))
}

// Analytics handles GET /api/v1/analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsToResponse(s.analytics.Stats()))
}

// Info handles GET / with service metadata.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Service:  "furnidex",
		Version:  version.Version,
		Commit:   version.Commit,
		Products: s.catalog.Len(),
		Endpoints: map[string]string{
			"recommend": "POST /api/v1/recommend",
			"products":  "GET /api/v1/products",
			"product":   "GET /api/v1/products/{id}",
			"analytics": "GET /api/v1/analytics",
			"health":    "GET /health",
			"metrics":   "GET /metrics",
		},
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrEmptyQuery,
		domain.ErrInvalidRequest,
		domain.ErrCatalogNotReady,
		domain.ErrDimensionMismatch,
		domain.ErrRateLimited,
		domain.ErrEmbeddingAuthFailed,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
