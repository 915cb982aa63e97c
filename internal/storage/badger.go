package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
)

var (
	ErrKeyNotFound = errors.New("storage: key not found")
	ErrClosed      = errors.New("storage: engine closed")
)

// BadgerEngine is a small key/value layer over Badger v3 with periodic
// value log GC and Prometheus gauges.
type BadgerEngine struct {
	db  *badger.DB
	cfg BadgerConfig
	log logger.Logger

	closed           atomic.Bool
	lastGCTime       atomic.Int64
	gcRuns           atomic.Uint64
	gcFilesRewritten atomic.Uint64

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsLastGCTime   prometheus.Gauge
	metricsGCRewrites   prometheus.Counter

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewBadgerEngine opens the database described by cfg.
func NewBadgerEngine(cfg KVConfig, log logger.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if log == nil {
		log = logger.Default()
	}

	opts := badger.DefaultOptions(cfg.Dir).
		WithLogger(logger.NewBadgerLogger(log)).
		WithBlockCacheSize(cfg.Badger.CacheSize).
		WithValueLogFileSize(cfg.Badger.ValueLogFileSize).
		WithSyncWrites(cfg.Badger.SyncWrites)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open: %w", err)
	}

	e := &BadgerEngine{
		db:     db,
		cfg:    cfg.Badger,
		log:    log,
		stopCh: make(chan struct{}),
	}
	if cfg.Badger.GCInterval > 0 && !cfg.InMemory {
		e.wg.Add(1)
		go e.gcLoop(cfg.Badger.GCInterval)
	}

	log.Info("badger engine opened", "dir", cfg.Dir, "in_memory", cfg.InMemory)
	return e, nil
}

func (e *BadgerEngine) check(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// Get returns a copy of the value stored under key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := e.check(ctx); err != nil {
		return nil, err
	}
	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Set stores value under key.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes key. Missing keys are not an error.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// SetBatch writes many pairs through a Badger WriteBatch, which splits
// them over as many transactions as needed.
func (e *BadgerEngine) SetBatch(ctx context.Context, kvs map[string][]byte) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	wb := e.db.NewWriteBatch()
	defer wb.Cancel()
	for k, v := range kvs {
		if err := wb.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// DropPrefix deletes every key starting with prefix.
func (e *BadgerEngine) DropPrefix(ctx context.Context, prefix []byte) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	return e.db.DropPrefix(prefix)
}

// Scan calls fn for each key with prefix in key order until fn returns
// false. Values are only valid during the call.
func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var keep bool
			if err := item.Value(func(v []byte) error {
				keep = fn(item.Key(), v)
				return nil
			}); err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}
		return nil
	})
}

// ScanKeys is Scan without loading values.
func (e *BadgerEngine) ScanKeys(ctx context.Context, prefix []byte, fn func(key []byte) bool) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if !fn(it.Item().Key()) {
				return nil
			}
		}
		return nil
	})
}

// Backup streams a full Badger backup to w and returns the version it
// covers.
func (e *BadgerEngine) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := e.check(ctx); err != nil {
		return 0, err
	}
	return e.db.Backup(w, 0)
}

// Restore loads a stream written by Backup. Existing keys are
// overwritten; keys absent from the backup are kept.
func (e *BadgerEngine) Restore(ctx context.Context, r io.Reader) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	if err := e.db.Load(r, 256); err != nil {
		return fmt.Errorf("badger: load: %w", err)
	}
	e.log.Info("badger backup restored")
	return nil
}

// GC rewrites value log files until Badger reports nothing to do.
func (e *BadgerEngine) GC(ctx context.Context) (rewritten int, err error) {
	if err := e.check(ctx); err != nil {
		return 0, err
	}
	start := time.Now()
	for ctx.Err() == nil {
		err := e.db.RunValueLogGC(e.cfg.GCDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			break
		}
		if err != nil {
			return rewritten, fmt.Errorf("badger: gc: %w", err)
		}
		rewritten++
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	e.gcRuns.Add(1)
	e.gcFilesRewritten.Add(uint64(rewritten))
	if e.metricsGCRewrites != nil {
		e.metricsGCRewrites.Add(float64(rewritten))
		e.metricsLastGCTime.SetToCurrentTime()
	}
	e.log.Debug("badger gc done", "rewritten", rewritten, "elapsed", time.Since(start))
	return rewritten, ctx.Err()
}

// Stats returns size and GC counters.
func (e *BadgerEngine) Stats() KVStats {
	lsm, vlog := e.db.Size()
	return KVStats{
		LSMSize:          uint64(lsm),
		ValueLogSize:     uint64(vlog),
		TotalSize:        uint64(lsm + vlog),
		LastGCTime:       e.lastGCTime.Load(),
		GCRuns:           e.gcRuns.Load(),
		GCFilesRewritten: e.gcFilesRewritten.Load(),
	}
}

// Close stops background work and closes the database. Later calls are
// no-ops.
func (e *BadgerEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("badger: close: %w", err)
	}
	e.log.Info("badger engine closed")
	return nil
}

// RegisterMetrics registers size and GC metrics and starts refreshing
// the size gauges every interval.
func (e *BadgerEngine) RegisterMetrics(reg prometheus.Registerer, interval time.Duration) *BadgerEngine {
	const ns, sub = "diorite", "badger"
	e.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: sub, Name: "lsm_size_bytes",
		Help: "Badger LSM tree size in bytes",
	})
	e.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: sub, Name: "value_log_size_bytes",
		Help: "Badger value log size in bytes",
	})
	e.metricsLastGCTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: sub, Name: "last_gc_timestamp_seconds",
		Help: "Unix time of the last value log GC",
	})
	e.metricsGCRewrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Subsystem: sub, Name: "gc_files_rewritten_total",
		Help: "Value log files rewritten by GC",
	})
	reg.MustRegister(e.metricsLSMSize, e.metricsValueLogSize, e.metricsLastGCTime, e.metricsGCRewrites)

	e.refreshMetrics()
	if interval > 0 {
		e.wg.Add(1)
		go e.metricsLoop(interval)
	}
	return e
}

func (e *BadgerEngine) refreshMetrics() {
	s := e.Stats()
	e.metricsLSMSize.Set(float64(s.LSMSize))
	e.metricsValueLogSize.Set(float64(s.ValueLogSize))
}

func (e *BadgerEngine) metricsLoop(interval time.Duration) {
	defer e.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.refreshMetrics()
		case <-e.stopCh:
			return
		}
	}
}

func (e *BadgerEngine) gcLoop(interval time.Duration) {
	defer e.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if _, err := e.GC(ctx); err != nil && !errors.Is(err, ErrClosed) {
				e.log.Warn("badger auto gc failed", "error", err)
			}
			cancel()
		case <-e.stopCh:
			return
		}
	}
}
