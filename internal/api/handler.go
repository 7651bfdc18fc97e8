// Package api exposes archived scan cycles and the learned price
// benchmarks over HTTP. Read-only; the scan loop is the only writer.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/argentix/silverwatch/internal/archive"
	"github.com/argentix/silverwatch/internal/benchmark"
)

// Handler provides the HTTP endpoints.
type Handler struct {
	cycles     *archive.Service
	benchmarks *benchmark.Store
}

// NewHandler creates a new API handler.
func NewHandler(cycles *archive.Service, benchmarks *benchmark.Store) *Handler {
	return &Handler{cycles: cycles, benchmarks: benchmarks}
}

// GetLatestCycle handles GET /api/v1/cycles/latest.
func (h *Handler) GetLatestCycle(w http.ResponseWriter, r *http.Request) {
	c, err := h.cycles.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no cycles archived")
			return
		}
		slog.Error("failed to get latest cycle", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetCycleByDate handles GET /api/v1/cycles/{date}.
func (h *Handler) GetCycleByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	c, err := h.cycles.GetByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cycle not found for date")
			return
		}
		slog.Error("failed to get cycle by date", "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListCycles handles GET /api/v1/cycles.
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	cycles, err := h.cycles.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list cycles", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cycles)
}

// GetBenchmarks handles GET /api/v1/benchmarks. Serves the current
// in-memory EMA entries keyed by "CoinType|Year|Mint".
func (h *Handler) GetBenchmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.benchmarks.Entries())
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
