package benchmark

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/palette"
	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/server/httpserver"
	"github.com/dioritemc/diorite-go/internal/server/redisserver"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/telemetry/metric"
)

func BenchmarkPaletteHit(b *testing.B) {
	all := allVariants(b)
	p := palette.New(palette.WithCapacity(len(all)))
	runWithWorkers(b, func(pb *testing.PB, worker int) {
		i := worker * 13
		for pb.Next() {
			p.Hit(all[i%len(all)])
			i++
		}
	})
}

func BenchmarkLookupGet(b *testing.B) {
	svc := service.NewLookupService(nil, metric.NewRegistry())
	ctx := context.Background()
	runWithWorkers(b, func(pb *testing.PB, worker int) {
		i := worker
		for pb.Next() {
			if _, err := svc.Get(ctx, domain.Query{Ref: Refs[i%len(Refs)]}); err != nil {
				b.Errorf("Get() error = %v", err)
				return
			}
			i++
		}
	})
}

func BenchmarkRESPGet(b *testing.B) {
	h := redisserver.NewHandler(service.NewLookupService(nil, nil), 10, metric.NewRegistry())
	ctx := context.Background()
	args := [][]byte{[]byte("GET"), nil}
	w := redisserver.NewWriter(io.Discard)
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		args[1] = []byte(Refs[i%len(Refs)])
		_ = h.Handle(ctx, w, args)
	}
	if err := w.Flush(); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkHTTPGet(b *testing.B) {
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: &bytes.Buffer{}})
	if err != nil {
		b.Fatal(err)
	}
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Lookup:  service.NewLookupService(nil, nil),
		Logger:  log,
		Metrics: metric.NewRegistry(),
		HotSize: 10,
	})
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/materials/"+Refs[i%len(Refs)], nil))
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d for %s", rec.Code, Refs[i%len(Refs)])
		}
	}
}
