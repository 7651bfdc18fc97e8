// Package worker drives the periodic scan loop: ingest listing
// batches, learn benchmark prices, evaluate, alert on new hits and
// persist state.
package worker

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/argentix/silverwatch/internal/benchmark"
	"github.com/argentix/silverwatch/internal/domain"
	"github.com/argentix/silverwatch/internal/engine"
	"github.com/argentix/silverwatch/internal/ingest"
	"github.com/argentix/silverwatch/internal/melt"
	"github.com/argentix/silverwatch/internal/notify"
	"github.com/argentix/silverwatch/internal/numismatic"
	"github.com/argentix/silverwatch/internal/seen"
)

// Archiver stores one completed cycle. Optional; archive failures are
// logged and never abort a cycle.
type Archiver interface {
	Archive(ctx context.Context, date time.Time, evaluated []domain.Evaluated, stats engine.Stats) error
}

// Options configures the scan loop.
type Options struct {
	Folder          string
	DeleteProcessed bool
	PriceStorePath  string
	SeenStorePath   string

	// CaptureMaxMinutes limits EMA capture to listings ending within
	// the window; 0 disables the window.
	CaptureMaxMinutes    int
	BulkTolerantQuantity bool

	Interval time.Duration
	Engine   engine.Config
}

// ScanWorker runs evaluation cycles over the watch folder.
type ScanWorker struct {
	opts     Options
	store    *benchmark.Store
	seenSet  *seen.Set
	notifier notify.Notifier
	archiver Archiver // optional
}

// NewScanWorker creates a new ScanWorker. archiver may be nil.
func NewScanWorker(opts Options, store *benchmark.Store, seenSet *seen.Set, notifier notify.Notifier, archiver Archiver) *ScanWorker {
	return &ScanWorker{
		opts:     opts,
		store:    store,
		seenSet:  seenSet,
		notifier: notifier,
		archiver: archiver,
	}
}

// Run starts the scan loop. It blocks until the context is cancelled.
func (w *ScanWorker) Run(ctx context.Context) {
	slog.Info("ScanWorker: starting", "interval", w.opts.Interval)

	// Scan immediately on startup
	if err := w.RunCycle(ctx); err != nil {
		slog.Error("ScanWorker: initial cycle failed", "error", err)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ScanWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.RunCycle(ctx); err != nil {
				slog.Error("ScanWorker: cycle failed", "error", err)
			}
		}
	}
}

// RunCycle runs one full scan cycle. The store files are rewritten
// every cycle; persistence errors are logged here and the cycle
// continues, since both stores are rebuilt from the next batches.
func (w *ScanWorker) RunCycle(ctx context.Context) error {
	listings, processed, err := ingest.Load(w.opts.Folder)
	if err != nil {
		return err
	}

	if w.capturePass(listings) {
		if err := w.store.Save(w.opts.PriceStorePath); err != nil {
			slog.Error("ScanWorker: failed to persist price store", "error", err)
		}
	}

	evaluated, stats := engine.Evaluate(listings, w.store, w.opts.Engine, time.Now())
	alerts := engine.SelectForAlert(evaluated)
	fresh, repeats := w.seenSet.SplitNew(alerts)

	if len(fresh) > 0 {
		if err := w.notifier.Notify(ctx, fresh); err != nil {
			slog.Error("ScanWorker: notify failed", "error", err)
		}
	}

	// Persisted every cycle, fresh alerts or not, so a restart never
	// re-alerts hits that were only ever seen as repeats.
	if err := seen.Save(w.opts.SeenStorePath, w.seenSet, time.Now()); err != nil {
		slog.Error("ScanWorker: failed to persist seen hits", "error", err)
	}

	if w.archiver != nil {
		if err := w.archiver.Archive(ctx, utcDate(), evaluated, stats); err != nil {
			slog.Warn("ScanWorker: cycle archive failed", "error", err)
		}
	}

	if w.opts.DeleteProcessed {
		ingest.Remove(processed)
	}

	slog.Info("ScanWorker: cycle completed",
		"listings", stats.Listings,
		"hits", stats.Hits,
		"prospects", stats.Prospects,
		"benchmarks", w.store.Len(),
		"new_alerts", len(fresh),
		"repeat_alerts", len(repeats))
	return nil
}

// capturePass feeds eligible near-end prices into the benchmark store,
// at most one observation per identity per cycle. With several
// candidates for one identity the busiest auction wins (more bids,
// then lower price), since contested prices track market value best.
// Reports whether the store mutated.
func (w *ScanWorker) capturePass(listings []domain.Listing) bool {
	now := time.Now()
	best := make(map[string]domain.Listing)

	for _, l := range listings {
		qty := l.Quantity
		if qty == 0 {
			qty = melt.ExtractQuantity(l.Title, w.opts.BulkTolerantQuantity)
		}
		if qty != 1 || l.Bids < 1 || l.TotalPrice <= 0 {
			continue
		}
		if !w.withinCaptureWindow(l, now) {
			continue
		}
		id, ok := numismatic.DetectIdentity(l.Title)
		if !ok {
			continue
		}

		key := id.Key()
		cur, exists := best[key]
		if !exists || betterCapture(l, cur) {
			best[key] = l
		}
	}

	mutated := false
	for key, l := range best {
		if w.store.UpdatePrice(key, l.TotalPrice, l.Bids, 1, l.Title) {
			mutated = true
		}
	}
	return mutated
}

func betterCapture(candidate, current domain.Listing) bool {
	if candidate.Bids != current.Bids {
		return candidate.Bids > current.Bids
	}
	return candidate.TotalPrice < current.TotalPrice
}

var timeLeftMinutesRE = regexp.MustCompile(`(\d{1,4})\s*m(?:in)?\b`)

func (w *ScanWorker) withinCaptureWindow(l domain.Listing, now time.Time) bool {
	if w.opts.CaptureMaxMinutes <= 0 {
		return true
	}

	if l.HasEndTime() {
		sec := l.EndTimeTS - now.Unix()
		return sec >= 0 && sec <= int64(w.opts.CaptureMaxMinutes)*60
	}

	if m := timeLeftMinutesRE.FindStringSubmatch(strings.ToLower(l.TimeLeft)); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil {
			return mins <= w.opts.CaptureMaxMinutes
		}
	}
	return false
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
