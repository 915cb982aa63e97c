package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newDiskEngine(t *testing.T) *BadgerEngine {
	t.Helper()
	cfg := DefaultKVConfig(t.TempDir())
	cfg.Badger.GCInterval = 0
	cfg.Badger.SyncWrites = false
	e, err := NewBadgerEngine(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func newMemEngine(t *testing.T) *BadgerEngine {
	t.Helper()
	e, err := NewBadgerEngine(KVConfig{InMemory: true, Badger: DefaultBadgerConfig()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestNewBadgerEngine_RequiresDir(t *testing.T) {
	if _, err := NewBadgerEngine(KVConfig{}, nil); err == nil {
		t.Error("NewBadgerEngine() without dir succeeded")
	}
}

func TestBadgerEngine_BasicOperations(t *testing.T) {
	engine := newDiskEngine(t)
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		if err := engine.Set(ctx, []byte("k"), []byte("v")); err != nil {
			t.Fatal(err)
		}
		got, err := engine.Get(ctx, []byte("k"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "v" {
			t.Errorf("Get() = %s, want v", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, err := engine.Get(ctx, []byte("missing")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_ = engine.Set(ctx, []byte("gone"), []byte("x"))
		if err := engine.Delete(ctx, []byte("gone")); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.Get(ctx, []byte("gone")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Get() after Delete error = %v", err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := engine.Set(cctx, []byte("k"), nil); !errors.Is(err, context.Canceled) {
			t.Errorf("Set() error = %v, want context.Canceled", err)
		}
	})
}

func TestBadgerEngine_BatchScanAndDropPrefix(t *testing.T) {
	engine := newMemEngine(t)
	ctx := context.Background()

	kvs := make(map[string][]byte)
	for i := 0; i < 50; i++ {
		kvs[fmt.Sprintf("a/%03d", i)] = []byte{byte(i)}
	}
	kvs["b/0"] = []byte("other")
	if err := engine.SetBatch(ctx, kvs); err != nil {
		t.Fatal(err)
	}

	var keys []string
	if err := engine.Scan(ctx, []byte("a/"), func(k, v []byte) bool {
		keys = append(keys, string(k))
		return true
	}); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 50 || keys[0] != "a/000" || keys[49] != "a/049" {
		t.Errorf("Scan() keys = %d, first %q", len(keys), keys[0])
	}

	n := 0
	_ = engine.ScanKeys(ctx, []byte("a/"), func([]byte) bool {
		n++
		return n < 5
	})
	if n != 5 {
		t.Errorf("ScanKeys() stopped after %d keys, want 5", n)
	}

	if err := engine.DropPrefix(ctx, []byte("a/")); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Get(ctx, []byte("a/001")); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() after DropPrefix error = %v", err)
	}
	if v, err := engine.Get(ctx, []byte("b/0")); err != nil || string(v) != "other" {
		t.Errorf("Get(b/0) = %s, %v", v, err)
	}
}

func TestBadgerEngine_BackupRestore(t *testing.T) {
	src := newDiskEngine(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_ = src.Set(ctx, []byte(fmt.Sprintf("key-%d", i)), []byte(fmt.Sprintf("value-%d", i)))
	}

	var buf bytes.Buffer
	if _, err := src.Backup(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	dst := newMemEngine(t)
	if err := dst.Restore(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := dst.Get(ctx, []byte("key-7"))
	if err != nil || string(got) != "value-7" {
		t.Errorf("Get(key-7) after Restore = %s, %v", got, err)
	}
}

func TestBadgerEngine_GCAndStats(t *testing.T) {
	engine := newDiskEngine(t)
	ctx := context.Background()
	_ = engine.Set(ctx, []byte("k"), bytes.Repeat([]byte("x"), 4096))

	if _, err := engine.GC(ctx); err != nil {
		t.Fatalf("GC() error = %v", err)
	}
	s := engine.Stats()
	if s.GCRuns != 1 || s.LastGCTime == 0 {
		t.Errorf("Stats() = %+v, want one GC run", s)
	}
}

func TestBadgerEngine_Close(t *testing.T) {
	engine := newDiskEngine(t)
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := engine.Get(context.Background(), []byte("k")); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
}

func TestBadgerEngine_RegisterMetrics(t *testing.T) {
	engine := newMemEngine(t)
	reg := prometheus.NewRegistry()
	engine.RegisterMetrics(reg, 0)

	if n, err := testutil.GatherAndCount(reg); err != nil || n != 4 {
		t.Errorf("GatherAndCount() = %d, %v, want 4", n, err)
	}
	_, _ = engine.GC(context.Background())
	if got := testutil.ToFloat64(engine.metricsGCRewrites); got != 0 {
		t.Errorf("gc rewrites = %v, want 0", got)
	}
}
