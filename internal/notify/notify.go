// Package notify delivers the per-cycle alert selection. Message
// formatting and SMTP delivery live outside this repo; the log
// notifier is the built-in implementation.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/argentix/silverwatch/internal/domain"
)

// Notifier consumes the ordered alert selection for one cycle. Only
// never-before-seen alerts reach it.
type Notifier interface {
	Notify(ctx context.Context, alerts []domain.Evaluated) error
}

// LogNotifier emits one structured log record per alert, headed by a
// batch line carrying the configured target margin band.
type LogNotifier struct {
	minMarginPct float64
	maxMarginPct float64
}

func NewLogNotifier(minMarginPct, maxMarginPct float64) *LogNotifier {
	return &LogNotifier{minMarginPct: minMarginPct, maxMarginPct: maxMarginPct}
}

func (n *LogNotifier) Notify(_ context.Context, alerts []domain.Evaluated) error {
	if len(alerts) == 0 {
		return nil
	}
	slog.Info("new alerts",
		"count", len(alerts),
		"target_margin", fmt.Sprintf("%.1f%%-%.1f%%", n.minMarginPct, n.maxMarginPct))

	for _, a := range alerts {
		attrs := []any{
			"title", a.Listing.Title,
			"url", a.Listing.URL,
			"total_price", a.Listing.TotalPrice,
			"bids", a.Listing.Bids,
			"time_left", a.Listing.TimeLeft,
			"melt_rec_max", a.Melt.RecMaxTotal,
		}
		if a.IsHit {
			attrs = append(attrs, "hit", true)
		}
		if num := a.Numismatic; num != nil && a.IsProspect {
			attrs = append(attrs,
				"prospect", true,
				"override", num.Override,
				"fmv_source", num.FMVSource,
				"score", num.Score)
		}
		slog.Info("alert", attrs...)
	}
	return nil
}
