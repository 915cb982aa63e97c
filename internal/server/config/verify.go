package config

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Verify validates cfg and reports every problem found.
func Verify(cfg *ServerConfig) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	h := cfg.Server.HTTP
	if _, _, err := net.SplitHostPort(h.Addr); err != nil {
		add("server.http.addr %q: %v", h.Addr, err)
	}
	if (h.TLSCertFile == "") != (h.TLSKeyFile == "") {
		add("server.http.tls_cert_file and tls_key_file must be set together")
	}
	for _, f := range []string{h.TLSCertFile, h.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			add("tls file: %v", err)
		}
	}
	if h.ReadTimeout < 0 || h.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		add("timeouts must not be negative")
	}

	if r := cfg.Server.RESP; r.Enabled {
		if _, _, err := net.SplitHostPort(r.Addr); err != nil {
			add("server.resp.addr %q: %v", r.Addr, err)
		} else if r.Addr == h.Addr {
			add("server.resp.addr %q is also the HTTP address", r.Addr)
		}
		if r.TLS && h.TLSCertFile == "" {
			add("server.resp.tls needs server.http.tls_cert_file")
		}
		if r.ReadTimeout < 0 || r.IdleTimeout < 0 {
			add("timeouts must not be negative")
		}
		if r.RateLimit < 0 {
			add("server.resp.rate_limit must not be negative")
		}
	}

	if rl := cfg.Server.RateLimit; rl.Enabled {
		if rl.RPS <= 0 {
			add("server.rate_limit.rps must be positive")
		}
		if rl.Burst < 1 {
			add("server.rate_limit.burst must be at least 1")
		}
	}

	st := cfg.Storage
	if st.GCDiscardRatio <= 0 || st.GCDiscardRatio >= 1 {
		add("storage.gc_discard_ratio must be in (0, 1)")
	}
	if st.DataDir != "" && !st.InMemory {
		if err := os.MkdirAll(st.DataDir, 0o750); err != nil {
			add("storage.data_dir: %v", err)
		}
	}
	if cfg.Registry.VerifyOnStart && !st.Enabled() {
		add("registry.verify_on_start needs storage.data_dir or storage.in_memory")
	}

	for _, ref := range cfg.Palette.Preload {
		if _, err := material.Parse(ref); err != nil {
			add("palette.preload: %v", err)
		}
	}
	if cfg.Palette.HotSize < 1 {
		add("palette.hot_size must be at least 1")
	}

	if !logger.ValidLevel(cfg.Log.Level) {
		add("log.level %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		add("log.format %q must be json or text", cfg.Log.Format)
	}
	return errors.Join(errs...)
}
