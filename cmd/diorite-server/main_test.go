package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/server/config"
	"github.com/dioritemc/diorite-go/internal/storage"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
	"github.com/dioritemc/diorite-go/pkg/material"
)

func memStore(t *testing.T) *storage.SnapshotStore {
	t.Helper()
	engine, err := openStorage(config.StorageSection{InMemory: true, GCDiscardRatio: 0.5}, logger.Default())
	if err != nil {
		t.Fatalf("openStorage() error = %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return storage.NewSnapshotStore(engine)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "server:\n  http:\n    addr: 127.0.0.1:6000\npalette:\n  hot_size: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIORITE_LOG_LEVEL", "debug")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Server.HTTP.Addr != "127.0.0.1:6000" || cfg.Palette.HotSize != 3 || cfg.Log.Level != "debug" {
		t.Errorf("loadConfig() = %+v", cfg)
	}
	if cfg.Server.RateLimit.Burst != config.DefaultRateLimitBurst {
		t.Errorf("default burst lost: %d", cfg.Server.RateLimit.Burst)
	}

	t.Setenv("DIORITE_LOG_LEVEL", "loud")
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig(bad level) error = nil")
	}
}

func TestCheckRegistry(t *testing.T) {
	ctx := context.Background()
	log := logger.Default()

	status, err := checkRegistry(ctx, nil, config.RegistrySection{VerifyOnStart: true}, "test", log)
	if err != nil || status.State != stateUnchecked {
		t.Fatalf("checkRegistry(nil store) = %+v, %v", status, err)
	}

	store := memStore(t)
	rc := config.RegistrySection{VerifyOnStart: true, FailOnDrift: true, SaveOnStart: true}
	status, err = checkRegistry(ctx, store, rc, "test", log)
	if err != nil || status.State != stateNew || status.Snapshot == "" {
		t.Fatalf("first checkRegistry() = %+v, %v", status, err)
	}

	status, err = checkRegistry(ctx, store, rc, "test", log)
	if err != nil || status.State != stateVerified {
		t.Fatalf("second checkRegistry() = %+v, %v", status, err)
	}

	entries := storage.CurrentEntries()
	entries[1].Name = "ROCK"
	if _, err := store.Save(ctx, "old", entries); err != nil {
		t.Fatal(err)
	}
	status, err = checkRegistry(ctx, store, rc, "test", log)
	if !errors.Is(err, domain.ErrSnapshotDrift) || status.State != stateDrift || status.Changed != 1 {
		t.Errorf("drift checkRegistry() = %+v, %v", status, err)
	}

	rc.FailOnDrift = false
	status, err = checkRegistry(ctx, store, rc, "test", log)
	if err != nil || status.State != stateDrift {
		t.Errorf("tolerated drift checkRegistry() = %+v, %v", status, err)
	}
}

func TestNewLookup(t *testing.T) {
	reg := metric.NewRegistry()
	svc, err := newLookup(config.PaletteSection{Preload: []string{"minecraft:air", "stone:diorite"}}, reg)
	if err != nil {
		t.Fatalf("newLookup() error = %v", err)
	}
	if got := svc.Palette().IndexOf(material.MustParse("1:3")); got != 1 {
		t.Errorf("IndexOf(1:3) = %d, want 1", got)
	}
	if _, err := svc.Get(context.Background(), domain.Query{Ref: "dirt"}); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(reg.LookupsTotal.WithLabelValues("get", "hit")); got != 1 {
		t.Errorf("lookup hits = %v, want 1", got)
	}

	if _, err := newLookup(config.PaletteSection{Preload: []string{"nope"}}, metric.NewRegistry()); err == nil {
		t.Error("newLookup(bad preload) error = nil")
	}
}

func TestRateLimitConfig(t *testing.T) {
	off := rateLimitConfig(config.RateLimitConfig{Enabled: false, RPS: 5, Burst: 5})
	if off.RPS != 0 {
		t.Errorf("disabled RPS = %v, want 0", off.RPS)
	}
	on := rateLimitConfig(config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 7, IdleTTL: time.Minute})
	if on.RPS != 5 || on.Burst != 7 || on.IdleTTL != time.Minute {
		t.Errorf("enabled = %+v", on)
	}
}

func TestRESPConfig(t *testing.T) {
	rc := config.Default().Server.RESP
	rc.TLS = true
	got := respConfig(rc, 3*time.Second, nil)
	if got.Addr != config.DefaultRESPAddr || got.WriteTimeout != 3*time.Second || got.RateLimit != config.DefaultRESPRateLimit {
		t.Errorf("respConfig() = %+v", got)
	}
	if got.TLSConfig != nil {
		t.Error("respConfig() has TLS without a certificate")
	}
}

func TestReloadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	prev := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(prev) })

	if err := reloadLogLevel(path); err != nil {
		t.Fatalf("reloadLogLevel() error = %v", err)
	}
	if got := logger.GetLevel(); got != "warn" {
		t.Errorf("GetLevel() = %q, want warn", got)
	}
}
