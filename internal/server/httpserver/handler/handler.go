package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
)

// Routes lists every pattern served by Handler. The router registers the
// same patterns so middleware sees the matched route.
var Routes = []string{
	"GET /health",
	"GET /v1/materials",
	"GET /v1/materials/{ref}",
	"GET /v1/materials/{ref}/variants",
	"GET /v1/ids/{id}",
	"GET /v1/ids/{id}/{meta}",
	"GET /v1/palette",
	"GET /v1/palette/hot",
}

// DefaultHotSize is used when no hot size is configured.
const DefaultHotSize = 10

// Handler serves the lookup API.
type Handler struct {
	lookup  *service.LookupService
	log     logger.Logger
	hotSize int
	status  func() RegistryStatus
	mux     *http.ServeMux
}

// Option configures a Handler.
type Option func(*Handler)

// WithHotSize sets the default n of /v1/palette/hot.
func WithHotSize(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.hotSize = n
		}
	}
}

// WithRegistryStatus reports the start-up snapshot check on /health.
func WithRegistryStatus(fn func() RegistryStatus) Option {
	return func(h *Handler) { h.status = fn }
}

// New creates a Handler over lookup.
func New(lookup *service.LookupService, log logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Default()
	}
	h := &Handler{
		lookup:  lookup,
		log:     log,
		hotSize: DefaultHotSize,
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)

	h.mux.HandleFunc("GET /v1/materials", h.handleListMaterials)
	h.mux.HandleFunc("GET /v1/materials/{ref}", h.handleGetMaterial)
	h.mux.HandleFunc("GET /v1/materials/{ref}/variants", h.handleVariants)

	h.mux.HandleFunc("GET /v1/ids/{id}", h.handleByID)
	h.mux.HandleFunc("GET /v1/ids/{id}/{meta}", h.handleByID)

	h.mux.HandleFunc("GET /v1/palette", h.handlePalette)
	h.mux.HandleFunc("GET /v1/palette/hot", h.handleHot)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		h.logFor(r).Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := logger.RequestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(requestID, code, message, details))
}

func (h *Handler) logFor(r *http.Request) logger.Logger {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With("request_id", id)
	}
	return h.log
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		h.writeError(w, r, ErrorCodeToHTTPStatus(code), code, err.Error(), nil)
		return
	}
	if r.Context().Err() != nil {
		h.writeError(w, r, http.StatusServiceUnavailable,
			domain.ErrServiceUnavailable.Code, "request cancelled", nil)
		return
	}

	h.logFor(r).Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError,
		domain.ErrInternalServer.Code, "internal server error", nil)
}

// ErrorCodeToHTTPStatus maps a DomainError code to an HTTP status. The
// last four digits of a code follow HTTP semantics.
func ErrorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasPrefix(code, "DIO-ARG-"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-5030"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
