package config

import "time"

// ServerConfig is the root configuration for diorite-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Registry RegistrySection `koanf:"registry"`
	Storage  StorageSection  `koanf:"storage"`
	Palette  PaletteSection  `koanf:"palette"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures the network endpoints.
type ServerSection struct {
	HTTP            HTTPConfig      `koanf:"http"`
	RESP            RESPConfig      `koanf:"resp"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
	ShutdownTimeout time.Duration   `koanf:"shutdown_timeout"`
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr         string        `koanf:"addr"`
	TLSCertFile  string        `koanf:"tls_cert_file"`
	TLSKeyFile   string        `koanf:"tls_key_file"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	Metrics      bool          `koanf:"metrics"`
}

// RESPConfig configures the read-only Redis protocol listener.
type RESPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	// TLS serves the HTTP certificate on this listener as well.
	TLS         bool          `koanf:"tls"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// RateLimit is commands per second per client IP; 0 disables it.
	RateLimit float64 `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool          `koanf:"enabled"`
	RPS     float64       `koanf:"rps"`
	Burst   int           `koanf:"burst"`
	IdleTTL time.Duration `koanf:"idle_ttl"`
}

// RegistrySection controls the start-up check of the material registry
// against the stored snapshot.
type RegistrySection struct {
	VerifyOnStart bool `koanf:"verify_on_start"`
	// FailOnDrift stops start-up when the check finds differences.
	FailOnDrift bool `koanf:"fail_on_drift"`
	// SaveOnStart writes the running registry after the check.
	SaveOnStart bool `koanf:"save_on_start"`
}

// StorageSection configures the Badger snapshot store. An empty DataDir
// with InMemory unset disables the store.
type StorageSection struct {
	DataDir        string        `koanf:"data_dir"`
	InMemory       bool          `koanf:"in_memory"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// Enabled reports whether a snapshot store should be opened.
func (s StorageSection) Enabled() bool { return s.DataDir != "" || s.InMemory }

// PaletteSection configures the runtime palette.
type PaletteSection struct {
	// Preload lists material references that get the first indexes.
	Preload []string `koanf:"preload"`
	// HotSize is the default length of /v1/palette/hot.
	HotSize int `koanf:"hot_size"`
}

// LogSection configures logging. Level can be changed while running.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
