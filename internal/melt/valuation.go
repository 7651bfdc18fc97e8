// Package melt computes melt-based valuations: deterministic math and
// title parsing only. No file I/O, no store access.
//
// Recommended-max values here are always melt-derived; numismatic
// economics live in the numismatic package and never replace these.
package melt

import (
	"github.com/argentix/silverwatch/internal/domain"
)

// Params are the market assumptions for a melt calculation.
type Params struct {
	SpotPrice    float64 // USD per troy oz
	PayoutPct    float64 // dealer melt payout, percent of melt value
	MinMarginPct float64 // target margin used for recommended-max math
	BidOffset    float64 // added to cost when computing profit
	BulkTolerant bool    // widens the quantity ladder's accepted range
}

// Calculate computes melt value, payout, profit and recommended-max
// figures for one listing. Pure and idempotent: identical inputs yield
// identical outputs. Quantity and per-coin weight are inferred from the
// title when the listing does not carry them.
func Calculate(l domain.Listing, p Params) domain.MeltCalculation {
	qty := l.Quantity
	if qty < 1 {
		qty = ExtractQuantity(l.Title, p.BulkTolerant)
	}
	ozPerCoin := l.OzPerCoin
	if ozPerCoin <= 0 {
		ozPerCoin = DetectOzPerCoin(l.Title)
	}

	totalOz := float64(qty) * ozPerCoin
	meltValue := totalOz * p.SpotPrice
	meltPayout := meltValue * p.PayoutPct / 100

	effectiveCost := l.TotalPrice + p.BidOffset
	profit := meltPayout - effectiveCost
	marginPct := 0.0
	if effectiveCost > 0 {
		marginPct = profit / effectiveCost * 100
	}

	recMaxTotal := meltPayout
	if p.MinMarginPct > 0 {
		recMaxTotal = meltPayout / (1 + p.MinMarginPct/100)
	}
	recMaxTotal = domain.RoundCurrency(recMaxTotal)

	recMaxItem := recMaxTotal - l.Shipping
	if recMaxItem < 0 {
		recMaxItem = 0
	}

	profitAtRecMax := meltPayout - recMaxTotal
	marginAtRecMax := 0.0
	if recMaxTotal > 0 {
		marginAtRecMax = profitAtRecMax / recMaxTotal * 100
	}

	return domain.MeltCalculation{
		Quantity:       qty,
		OzPerCoin:      domain.RoundWeight(ozPerCoin),
		TotalOz:        domain.RoundWeight(totalOz),
		MeltValue:      domain.RoundCurrency(meltValue),
		MeltPayout:     domain.RoundCurrency(meltPayout),
		EffectiveCost:  domain.RoundCurrency(effectiveCost),
		Profit:         domain.RoundCurrency(profit),
		MarginPct:      domain.RoundPercent(marginPct),
		RecMaxTotal:    recMaxTotal,
		RecMaxItem:     domain.RoundCurrency(recMaxItem),
		ProfitAtRecMax: domain.RoundCurrency(profitAtRecMax),
		MarginAtRecMax: domain.RoundPercent(marginAtRecMax),
	}
}
