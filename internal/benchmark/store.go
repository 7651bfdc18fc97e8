// Package benchmark is the durable EMA price memory: a keyed store of
// self-learned benchmark prices with strict write-time eligibility
// gating. Keys are canonical "<CoinType>|<Year>|<Mint>" identities.
package benchmark

import (
	"time"

	"github.com/argentix/silverwatch/internal/domain"
)

// Entry is one benchmark row. An entry exists iff it has absorbed at
// least one eligible capture (Samples >= 1). Entries are updated in
// place and never deleted.
type Entry struct {
	EMAPrice       float64 `json:"ema_price"`
	Samples        int     `json:"samples"`
	LastTotalPrice float64 `json:"last_total_price"`
	LastUpdated    int64   `json:"last_updated"`
	ObserversTotal int     `json:"observers_total"`
}

// Store tracks EMA benchmarks in memory. It is not safe for concurrent
// use; cycles are single-threaded and persistence is whole-file.
type Store struct {
	alpha   float64
	bumpPct float64
	entries map[string]Entry
	now     func() int64
}

// NewStore creates an empty store with the given smoothing factor
// (0 < alpha <= 1) and capture bump.
func NewStore(alpha, bumpPct float64) *Store {
	return &Store{
		alpha:   alpha,
		bumpPct: bumpPct,
		entries: make(map[string]Entry),
		now:     func() int64 { return time.Now().Unix() },
	}
}

// UpdatePrice applies one observed sale price to the benchmark for key.
// Ineligible observations (wrong quantity, no bids, non-positive price,
// disqualified title) are a strict no-op: no mutation, no error, just a
// false return. Returns true iff the store mutated.
//
// Eligible prices receive a one-time capture bump before smoothing, to
// offset the late-auction sniping bias of prices sampled mid-auction.
func (s *Store) UpdatePrice(key string, totalPrice float64, bidCount, qty int, title string) bool {
	if key == "" {
		return false
	}
	if qty != 1 || bidCount < 1 || totalPrice <= 0 {
		return false
	}
	if !captureEligibleTitle(title) {
		return false
	}

	bumped := domain.RoundCurrency(totalPrice * (1 + s.bumpPct))
	ts := s.now()

	existing, ok := s.entries[key]
	if !ok {
		s.entries[key] = Entry{
			EMAPrice:       bumped,
			Samples:        1,
			LastTotalPrice: bumped,
			LastUpdated:    ts,
			ObserversTotal: bidCount,
		}
		return true
	}

	existing.EMAPrice = domain.RoundCurrency(s.alpha*bumped + (1-s.alpha)*existing.EMAPrice)
	existing.Samples++
	existing.LastTotalPrice = bumped
	existing.LastUpdated = ts
	existing.ObserversTotal += bidCount
	s.entries[key] = existing
	return true
}

// Lookup returns the benchmark EMA and cumulative observer total for a
// key, with ok=false when no benchmark has been learned yet.
func (s *Store) Lookup(key string) (ema float64, observers int, ok bool) {
	e, ok := s.entries[key]
	if !ok {
		return 0, 0, false
	}
	return e.EMAPrice, e.ObserversTotal, true
}

// Len returns the number of learned benchmarks.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of all benchmark rows keyed by identity.
func (s *Store) Entries() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
