package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5090"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultRESPAddr        = "127.0.0.1:6379"
	DefaultRESPIdleTimeout = 5 * time.Minute
	DefaultRESPRateLimit   = 1000

	DefaultRateLimitRPS     = 100
	DefaultRateLimitBurst   = 200
	DefaultRateLimitIdleTTL = 10 * time.Minute

	DefaultGCInterval     = 10 * time.Minute
	DefaultGCDiscardRatio = 0.5

	DefaultHotSize = 10

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration. The snapshot store
// is disabled until a data directory is set.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:         DefaultHTTPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				Metrics:      true,
			},
			RESP: RESPConfig{
				Addr:        DefaultRESPAddr,
				ReadTimeout: DefaultReadTimeout,
				IdleTimeout: DefaultRESPIdleTimeout,
				RateLimit:   DefaultRESPRateLimit,
			},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
				IdleTTL: DefaultRateLimitIdleTTL,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Storage: StorageSection{
			GCInterval:     DefaultGCInterval,
			GCDiscardRatio: DefaultGCDiscardRatio,
		},
		Palette: PaletteSection{
			Preload: []string{"minecraft:air"},
			HotSize: DefaultHotSize,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
