package numismatic

import (
	"github.com/argentix/silverwatch/internal/domain"
)

// DealerEconomics is the dealer-exit view of a numismatic prospect.
// Recommended-max values here are anchored to the dealer value, never
// to melt: melt remains the guaranteed fallback reference and these
// numbers never replace it elsewhere.
type DealerEconomics struct {
	Value          float64
	Profit         float64
	MarginPct      float64
	RecMaxTotal    float64
	RecMaxItem     float64
	ProfitAtRecMax float64
	MarginAtRecMax float64
}

// ComputeDealerEconomics derives dealer-based figures from a resolved
// FMV floor. payoutPct is the dealer's payout as a percent of FMV;
// minMarginPct is the target margin for the recommended-max math.
func ComputeDealerEconomics(fmvFloor, payoutPct, minMarginPct float64, l domain.Listing) DealerEconomics {
	value := fmvFloor * payoutPct / 100
	profit := value - l.TotalPrice

	marginPct := 0.0
	if l.TotalPrice > 0 {
		marginPct = profit / l.TotalPrice * 100
	}

	recMaxTotal := value
	if minMarginPct > 0 {
		recMaxTotal = value / (1 + minMarginPct/100)
	}
	recMaxTotal = domain.RoundCurrency(recMaxTotal)

	recMaxItem := recMaxTotal - l.Shipping
	if recMaxItem < 0 {
		recMaxItem = 0
	}

	profitAtRecMax := value - recMaxTotal
	marginAtRecMax := 0.0
	if recMaxTotal > 0 {
		marginAtRecMax = profitAtRecMax / recMaxTotal * 100
	}

	return DealerEconomics{
		Value:          domain.RoundCurrency(value),
		Profit:         domain.RoundCurrency(profit),
		MarginPct:      domain.RoundPercent(marginPct),
		RecMaxTotal:    recMaxTotal,
		RecMaxItem:     domain.RoundCurrency(recMaxItem),
		ProfitAtRecMax: domain.RoundCurrency(profitAtRecMax),
		MarginAtRecMax: domain.RoundPercent(marginAtRecMax),
	}
}
