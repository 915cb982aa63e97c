package httpserver

import (
	"net/http"
	"time"

	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/server/httpserver/handler"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	Lookup *service.LookupService
	Logger logger.Logger

	// Metrics receives request metrics. /metrics is served from it when
	// ExposeMetrics is set.
	Metrics       *metric.Registry
	ExposeMetrics bool

	// RateLimit is per client IP. Zero RPS disables it.
	RateLimit RateLimitConfig

	HotSize        int
	RegistryStatus func() handler.RegistryStatus
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		ExposeMetrics: true,
		RateLimit:     RateLimitConfig{RPS: 100, Burst: 200, IdleTTL: 5 * time.Minute},
		HotSize:       handler.DefaultHotSize,
	}
}

// NewRouter builds the top-level handler. Every API route is registered
// on the outer mux so the audit middleware sees the matched pattern.
//
// Order: Recover -> RequestID -> RateLimit -> Audit -> Handler.
// /health skips the rate limit.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	lookup := cfg.Lookup
	if lookup == nil {
		var obs service.Observer
		if cfg.Metrics != nil {
			obs = cfg.Metrics
		}
		lookup = service.NewLookupService(nil, obs)
	}

	h := handler.New(lookup, log,
		handler.WithHotSize(cfg.HotSize),
		handler.WithRegistryStatus(cfg.RegistryStatus),
	)

	var obs RequestObserver
	if cfg.Metrics != nil {
		obs = cfg.Metrics
	}

	base := []Middleware{Recover(log), RequestID()}
	api := append([]Middleware{}, base...)
	if cfg.RateLimit.RPS > 0 {
		rl := cfg.RateLimit
		if rl.OnLimited == nil && cfg.Metrics != nil {
			rl.OnLimited = cfg.Metrics.RateLimited.Inc
		}
		api = append(api, RateLimit(rl))
	}
	api = append(api, Audit(log, obs))

	mux := http.NewServeMux()
	for _, pattern := range handler.Routes {
		if pattern == "GET /health" {
			mux.Handle(pattern, Chain(h, append(base, Audit(log, obs))...))
			continue
		}
		mux.Handle(pattern, Chain(h, api...))
	}

	if cfg.ExposeMetrics && cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(log)))
	}
	return mux
}
