package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/internal/infra/confloader"
	"github.com/dioritemc/diorite-go/internal/infra/shutdown"
	"github.com/dioritemc/diorite-go/internal/infra/tlsroots"
	"github.com/dioritemc/diorite-go/internal/server/config"
	"github.com/dioritemc/diorite-go/internal/server/httpserver"
	"github.com/dioritemc/diorite-go/internal/server/httpserver/handler"
	"github.com/dioritemc/diorite-go/internal/server/redisserver"
	"github.com/dioritemc/diorite-go/internal/storage"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
)

// EnvPrefix is the environment prefix for server settings.
const EnvPrefix = "DIORITE_"

const metricsInterval = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("diorite-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
		Attrs:  []any{"service", "diorite-server"},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting diorite-server",
		append([]any{"version", info.Version, "commit", info.Commit, "config", *configFile}, config.Summary(cfg)...)...)

	ctx := context.Background()
	metrics := metric.NewRegistry()
	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, shutdown.WithLogger(log))

	var store *storage.SnapshotStore
	if cfg.Storage.Enabled() {
		engine, err := openStorage(cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		engine.RegisterMetrics(metrics.Prometheus(), metricsInterval)
		shutdownHandler.OnShutdown("storage", func(context.Context) error {
			return engine.Close()
		})
		store = storage.NewSnapshotStore(engine)
	}

	status, err := checkRegistry(ctx, store, cfg.Registry, info.Version, log)
	if err != nil {
		_ = shutdownHandler.Shutdown()
		return err
	}

	lookup, err := newLookup(cfg.Palette, metrics)
	if err != nil {
		_ = shutdownHandler.Shutdown()
		return err
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Lookup:        lookup,
		Logger:        log,
		Metrics:       metrics,
		ExposeMetrics: cfg.Server.HTTP.Metrics,
		RateLimit:     rateLimitConfig(cfg.Server.RateLimit),
		HotSize:       cfg.Palette.HotSize,
		RegistryStatus: func() handler.RegistryStatus {
			return status
		},
	})
	serverOpts := []httpserver.Option{
		httpserver.WithTimeouts(cfg.Server.HTTP.ReadTimeout, cfg.Server.HTTP.WriteTimeout),
	}
	tlsEnabled := cfg.Server.HTTP.TLSCertFile != ""
	var certs *tlsroots.CertReloader
	if tlsEnabled {
		certs, err = watchCertificate(ctx, cfg.Server.HTTP, log, metrics)
		if err != nil {
			_ = shutdownHandler.Shutdown()
			return err
		}
		shutdownHandler.OnShutdown("cert-watcher", func(context.Context) error {
			return certs.Stop()
		})
		serverOpts = append(serverOpts, httpserver.WithTLSConfig(certs.ServerConfig()))
	}
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router, serverOpts...)
	shutdownHandler.OnShutdown("http", httpServer.Shutdown)

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, log, metrics)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			watcher.Start(ctx)
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	serveErr := make(chan error, 2)

	if rc := cfg.Server.RESP; rc.Enabled {
		respServer := redisserver.New(respConfig(rc, cfg.Server.HTTP.WriteTimeout, certs),
			redisserver.NewHandler(lookup, cfg.Palette.HotSize, metrics), log)
		shutdownHandler.OnShutdown("resp", respServer.Shutdown)
		go func() {
			if err := respServer.ListenAndServe(ctx); err != nil {
				serveErr <- fmt.Errorf("resp listener: %w", err)
			}
		}()
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr, "tls", tlsEnabled)

		var err error
		if tlsEnabled {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	waitCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go func() {
		select {
		case err := <-serveErr:
			log.Error("listener failed", "error", err)
			cancel(err)
		case <-shutdownHandler.Done():
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(waitCtx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	if err := context.Cause(waitCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from the defaults, file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithEnvPrefix(EnvPrefix)}
	if configFile != "" {
		opts = append(opts, confloader.WithFile(configFile))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
