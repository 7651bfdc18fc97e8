package api

import (
	"net/http"
	"time"

	"github.com/argentix/silverwatch/internal/archive"
	"github.com/argentix/silverwatch/internal/benchmark"
)

// NewServer creates the read-only HTTP server over the cycle archive
// and the in-memory benchmark store.
func NewServer(port string, cycles *archive.Service, benchmarks *benchmark.Store) *http.Server {
	handler := NewHandler(cycles, benchmarks)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/cycles/latest", handler.GetLatestCycle)
	mux.HandleFunc("GET /api/v1/cycles/{date}", handler.GetCycleByDate)
	mux.HandleFunc("GET /api/v1/cycles", handler.ListCycles)
	mux.HandleFunc("GET /api/v1/benchmarks", handler.GetBenchmarks)
	mux.HandleFunc("GET /healthz", handler.Health)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
