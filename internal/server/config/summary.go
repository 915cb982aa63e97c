package config

import "strings"

// Summary returns the effective settings as alternating key/value pairs
// for a structured log line. TLS file paths are reduced to whether they
// are set.
func Summary(cfg *ServerConfig) []any {
	return []any{
		"http_addr", cfg.Server.HTTP.Addr,
		"tls", cfg.Server.HTTP.TLSCertFile != "",
		"metrics", cfg.Server.HTTP.Metrics,
		"resp", respAddr(cfg.Server.RESP),
		"rate_limit", cfg.Server.RateLimit.Enabled,
		"rate_limit_rps", cfg.Server.RateLimit.RPS,
		"storage", storageMode(cfg.Storage),
		"verify_on_start", cfg.Registry.VerifyOnStart,
		"palette_preload", strings.Join(cfg.Palette.Preload, ","),
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
	}
}

func storageMode(s StorageSection) string {
	switch {
	case s.InMemory:
		return "memory"
	case s.DataDir != "":
		return s.DataDir
	}
	return "disabled"
}

func respAddr(r RESPConfig) string {
	if !r.Enabled {
		return "disabled"
	}
	return r.Addr
}
