package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/palette"
	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/infra/confloader"
	"github.com/dioritemc/diorite-go/internal/infra/tlsroots"
	"github.com/dioritemc/diorite-go/internal/server/config"
	"github.com/dioritemc/diorite-go/internal/server/httpserver"
	"github.com/dioritemc/diorite-go/internal/server/httpserver/handler"
	"github.com/dioritemc/diorite-go/internal/server/redisserver"
	"github.com/dioritemc/diorite-go/internal/storage"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// Registry check states reported on /health.
const (
	stateUnchecked = "unchecked"
	stateVerified  = "verified"
	stateDrift     = "drift"
	stateNew       = "new"
)

// openStorage opens the Badger engine behind the snapshot store.
func openStorage(st config.StorageSection, log logger.Logger) (*storage.BadgerEngine, error) {
	cfg := storage.DefaultKVConfig(st.DataDir)
	cfg.InMemory = st.InMemory
	cfg.Badger.GCInterval = st.GCInterval
	cfg.Badger.GCDiscardRatio = st.GCDiscardRatio
	return storage.NewBadgerEngine(cfg, log)
}

// checkRegistry compares the compiled-in registry with the stored
// snapshot. A nil store yields the unchecked state.
func checkRegistry(ctx context.Context, store *storage.SnapshotStore, rc config.RegistrySection,
	version string, log logger.Logger) (handler.RegistryStatus, error) {
	status := handler.RegistryStatus{State: stateUnchecked}
	if store == nil {
		return status, nil
	}

	if rc.VerifyOnStart {
		info, drift, err := store.Verify(ctx)
		switch {
		case errors.Is(err, domain.ErrSnapshotNotFound):
			status.State = stateNew
			log.Info("no registry snapshot stored")
		case err != nil:
			return status, fmt.Errorf("verify registry: %w", err)
		default:
			status = handler.RegistryStatus{
				State:    stateVerified,
				Snapshot: info.ID,
				Added:    len(drift.Added),
				Removed:  len(drift.Removed),
				Changed:  len(drift.Changed),
			}
			if drift.Breaking() {
				status.State = stateDrift
				log.Warn("registry drift against snapshot", "snapshot", info.ID,
					"removed", status.Removed, "changed", status.Changed)
				if rc.FailOnDrift {
					return status, domain.ErrSnapshotDrift.WithDetails(
						fmt.Sprintf("snapshot %s: %d removed, %d changed", info.ID, status.Removed, status.Changed))
				}
			} else {
				log.Info("registry verified", "snapshot", info.ID, "added", status.Added)
			}
		}
	}

	if rc.SaveOnStart {
		info, err := store.SaveRegistry(ctx, version)
		if err != nil {
			return status, fmt.Errorf("save registry snapshot: %w", err)
		}
		log.Info("registry snapshot saved", "snapshot", info.ID, "entries", info.Entries)
		if status.State == stateUnchecked || status.State == stateNew {
			status.Snapshot = info.ID
		}
	}
	return status, nil
}

// newLookup builds the palette from the preload list and wires palette
// metrics into reg.
func newLookup(pc config.PaletteSection, reg *metric.Registry) (*service.LookupService, error) {
	preload := make([]*material.Material, 0, len(pc.Preload))
	for _, ref := range pc.Preload {
		m, err := material.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("palette preload %q: %w", ref, err)
		}
		preload = append(preload, m)
	}
	p := palette.New(palette.WithPreload(preload...))
	reg.MustRegister(metric.NewCollector(p))
	return service.NewLookupService(p, reg), nil
}

func rateLimitConfig(rl config.RateLimitConfig) httpserver.RateLimitConfig {
	if !rl.Enabled {
		return httpserver.RateLimitConfig{}
	}
	return httpserver.RateLimitConfig{RPS: rl.RPS, Burst: rl.Burst, IdleTTL: rl.IdleTTL}
}

// respConfig maps the listener settings. certs may be nil when TLS is off.
func respConfig(rc config.RESPConfig, writeTimeout time.Duration, certs *tlsroots.CertReloader) redisserver.Config {
	cfg := redisserver.Config{
		Addr:         rc.Addr,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  rc.IdleTimeout,
		RateLimit:    rc.RateLimit,
	}
	if rc.TLS && certs != nil {
		cfg.TLSConfig = certs.ServerConfig()
	}
	return cfg
}

// watchConfig reloads the log level when the config file changes. Other
// settings need a restart.
func watchConfig(path string, log logger.Logger, reg *metric.Registry) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(path, confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	w.OnChange(func(string) {
		err := reloadLogLevel(path)
		reg.ObserveReload(err)
		if err != nil {
			log.Error("config reload failed", "file", path, "error", err)
			return
		}
		log.Info("config reloaded", "log_level", logger.GetLevel())
	})
	return w, nil
}

// watchCertificate serves the configured key pair and reloads it when
// either file changes.
func watchCertificate(ctx context.Context, hc config.HTTPConfig, log logger.Logger,
	reg *metric.Registry) (*tlsroots.CertReloader, error) {
	certs, err := tlsroots.NewCertReloader(hc.TLSCertFile, hc.TLSKeyFile,
		tlsroots.WithReloaderLogger(log),
		tlsroots.WithReloadHook(reg.ObserveReload))
	if err != nil {
		return nil, err
	}
	if err := certs.Watch(ctx); err != nil {
		log.Warn("certificate reload disabled", "error", err)
	}
	return certs, nil
}

func reloadLogLevel(path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.Log.Level)
	return nil
}
