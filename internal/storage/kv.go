package storage

import "time"

// KVStats reports engine size and GC activity.
type KVStats struct {
	LSMSize          uint64 `json:"lsm_size"`
	ValueLogSize     uint64 `json:"value_log_size"`
	TotalSize        uint64 `json:"total_size"`
	LastGCTime       int64  `json:"last_gc_time"` // Unix milliseconds, 0 before the first run
	GCRuns           uint64 `json:"gc_runs"`
	GCFilesRewritten uint64 `json:"gc_files_rewritten"`
}

// KVConfig configures the Badger engine.
type KVConfig struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool
	Badger   BadgerConfig
}

// BadgerConfig holds Badger tuning parameters.
type BadgerConfig struct {
	// GCInterval is the period of automatic value log GC. Zero disables it.
	GCInterval time.Duration
	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64
	// CacheSize is the block cache size in bytes.
	CacheSize int64
	// ValueLogFileSize caps one value log file.
	ValueLogFileSize int64
	// SyncWrites fsyncs every commit.
	SyncWrites bool
}

// DefaultKVConfig returns the default configuration for dir.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{Dir: dir, Badger: DefaultBadgerConfig()}
}

// DefaultBadgerConfig returns tuning suited to a registry snapshot: a few
// thousand small values written rarely.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       10 * time.Minute,
		GCDiscardRatio:   0.5,
		CacheSize:        16 << 20,
		ValueLogFileSize: 64 << 20,
		SyncWrites:       true,
	}
}
