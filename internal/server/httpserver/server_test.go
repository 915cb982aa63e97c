package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dioritemc/diorite-go/internal/server/httpserver/handler"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(ln.Addr().String(), okHandler(), WithTimeouts(time.Second, time.Second))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil after Shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for Serve to return")
	}
}

func TestWithTimeouts(t *testing.T) {
	s := New(":0", okHandler(), WithTimeouts(2*time.Second, 0))
	if s.httpServer.ReadTimeout != 2*time.Second || s.httpServer.WriteTimeout != 0 {
		t.Errorf("timeouts = %v/%v", s.httpServer.ReadTimeout, s.httpServer.WriteTimeout)
	}
}

func TestNewRouter(t *testing.T) {
	reg := metric.NewRegistry()
	cfg := DefaultRouterConfig()
	cfg.Metrics = reg
	cfg.RateLimit = RateLimitConfig{RPS: 0.001, Burst: 3}
	cfg.RegistryStatus = func() handler.RegistryStatus { return handler.RegistryStatus{State: "verified"} }
	router := NewRouter(cfg)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "198.51.100.1:4000"
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := get("/v1/materials/stone"); rec.Code != http.StatusOK || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("GET material = %d, request id %q", rec.Code, rec.Header().Get("X-Request-ID"))
	}
	get("/v1/materials/nope")
	get("/v1/ids/1")
	if rec := get("/v1/ids/1"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("fourth API request = %d, want 429", rec.Code)
	}
	if rec := get("/health"); rec.Code != http.StatusOK {
		t.Errorf("health while limited = %d, want 200", rec.Code)
	}
	if rec := get("/v1/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route = %d, want 404", rec.Code)
	}

	if got := testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "GET /v1/materials/{ref}", "404")); got != 1 {
		t.Errorf("404 material requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.RateLimited); got != 1 {
		t.Errorf("rate limited = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.LookupsTotal.WithLabelValues("get", "hit")); got != 1 {
		t.Errorf("lookup hits = %v, want 1", got)
	}

	rec := get("/metrics")
	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusOK || !strings.Contains(string(body), "diorite_http_requests_total") {
		t.Errorf("GET /metrics = %d", rec.Code)
	}
}

func TestNewRouter_MetricsHidden(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.Metrics = metric.NewRegistry()
	cfg.ExposeMetrics = false
	rec := httptest.NewRecorder()
	NewRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", rec.Code)
	}
}
