// Package engine composes melt valuation, numismatic resolution and
// prospect scoring into per-listing verdicts.
package engine

import (
	"math"
	"slices"
	"time"

	"github.com/argentix/silverwatch/internal/domain"
	"github.com/argentix/silverwatch/internal/melt"
	"github.com/argentix/silverwatch/internal/numismatic"
	"github.com/argentix/silverwatch/internal/prospect"
	"github.com/argentix/silverwatch/internal/seen"
)

// Config collects the evaluation knobs for one cycle.
type Config struct {
	Melt                melt.Params
	NumismaticPayoutPct float64
	Prospect            prospect.Config

	// Prospect gating
	ProsMaxTotal           float64 // 0 disables the spend cap
	ProsMinDealerMarginPct float64
	ProsMinScore           int
}

// Stats carries per-cycle diagnostics back to the caller. It replaces
// any notion of shared counters: every Evaluate call returns its own.
type Stats struct {
	Listings          int
	Hits              int
	Prospects         int
	OverridesResolved int
	FloorsFromEMA     int
	FloorsFromStatic  int
	IdentityNoFloor   int
}

// Evaluate produces one verdict per listing, sorted by time-to-end
// ascending with unknown end times last. Melt figures are always
// populated; the numismatic overlay only when the title resolves to a
// known identity with an FMV floor. IsHit is a melt-only signal and is
// never influenced by numismatic status.
func Evaluate(listings []domain.Listing, benchmarks numismatic.BenchmarkSource, cfg Config, now time.Time) ([]domain.Evaluated, Stats) {
	stats := Stats{Listings: len(listings)}
	out := make([]domain.Evaluated, 0, len(listings))

	for _, l := range listings {
		mc := melt.Calculate(l, cfg.Melt)

		ev := domain.Evaluated{
			Listing: l,
			Melt:    mc,
			IsHit:   l.TotalPrice > 0 && mc.RecMaxTotal > 0 && l.TotalPrice <= mc.RecMaxTotal,
		}
		if ev.IsHit {
			stats.Hits++
		}

		if num, isPros := resolveNumismatic(l, benchmarks, cfg, now, &stats); num != nil {
			ev.Numismatic = num
			ev.IsProspect = isPros
			if isPros {
				stats.Prospects++
			}
		}

		out = append(out, ev)
	}

	slices.SortStableFunc(out, func(a, b domain.Evaluated) int {
		ka, kb := endSortKey(a.Listing), endSortKey(b.Listing)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})

	return out, stats
}

// resolveNumismatic builds the numismatic overlay for a listing, or nil
// when the title does not resolve to a known identity. The overlay is
// present whenever an override resolved; the FMV and dealer fields stay
// nil when no floor exists, so alerts and reports keep the override
// annotation either way.
func resolveNumismatic(l domain.Listing, benchmarks numismatic.BenchmarkSource, cfg Config, now time.Time, stats *Stats) (*domain.NumismaticFields, bool) {
	id, ok := numismatic.DetectIdentity(l.Title)
	if !ok {
		return nil, false
	}

	fields := &domain.NumismaticFields{
		Override: id.DisplayName(),
		CoinType: id.CoinType,
		Year:     id.Year,
		Mint:     id.Mint,
	}
	if url, ok := numismatic.CoinbookURL(id.CoinType); ok {
		fields.CoinbookURL = url
	}

	floor, source := numismatic.ResolveFMV(benchmarks, id)
	if floor == nil {
		stats.IdentityNoFloor++
		fields.Score, fields.ScoreReasons = prospect.Score(l, nil, nil, cfg.Prospect, now)
		return fields, false
	}
	stats.OverridesResolved++
	if source == numismatic.SourceStaticDefault {
		stats.FloorsFromStatic++
	} else {
		stats.FloorsFromEMA++
	}

	dealer := numismatic.ComputeDealerEconomics(*floor, cfg.NumismaticPayoutPct, cfg.Melt.MinMarginPct, l)
	score, reasons := prospect.Score(l, floor, &dealer.Value, cfg.Prospect, now)

	fields.FMVFloor = floor
	fields.FMVSource = source
	fields.DealerValue = &dealer.Value
	fields.DealerProfit = &dealer.Profit
	fields.DealerMarginPct = &dealer.MarginPct
	fields.DealerRecMaxTotal = &dealer.RecMaxTotal
	fields.DealerRecMaxItem = &dealer.RecMaxItem
	fields.DealerProfitAtRecMax = &dealer.ProfitAtRecMax
	fields.DealerMarginAtRecMax = &dealer.MarginAtRecMax
	fields.Score = score
	fields.ScoreReasons = reasons

	capOK := cfg.ProsMaxTotal <= 0 || l.TotalPrice <= cfg.ProsMaxTotal
	marginOK := dealer.MarginPct >= cfg.ProsMinDealerMarginPct ||
		slices.Contains(reasons, prospect.ReasonCat3)
	isPros := capOK && marginOK && score >= cfg.ProsMinScore

	return fields, isPros
}

// unknownEndSentinel pushes listings without an end time after every
// listing that has one.
const unknownEndSentinel = int64(math.MaxInt64)

func endSortKey(l domain.Listing) int64 {
	if l.HasEndTime() {
		return l.EndTimeTS
	}
	return unknownEndSentinel
}

// SelectForAlert picks the listings worth surfacing: hits and
// prospects, each dedup key at most once, input order preserved.
func SelectForAlert(evaluated []domain.Evaluated) []domain.Evaluated {
	taken := make(map[string]struct{})
	var out []domain.Evaluated

	for _, ev := range evaluated {
		if !ev.IsHit && !ev.IsProspect {
			continue
		}
		key := seen.Key(ev.Listing)
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		out = append(out, ev)
	}
	return out
}
