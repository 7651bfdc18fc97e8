package melt

import (
	"reflect"
	"testing"

	"github.com/argentix/silverwatch/internal/domain"
)

func TestCalculateWalkingLibertyScenario(t *testing.T) {
	l := domain.Listing{
		Title:      "1921 Walking Liberty Half, AU, no bids",
		TotalPrice: 40,
		Shipping:   5,
		Quantity:   1,
	}
	p := Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: 12}

	got := Calculate(l, p)

	if got.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", got.Quantity)
	}
	if got.OzPerCoin != 0.36169 {
		t.Errorf("OzPerCoin = %v, want 0.36169", got.OzPerCoin)
	}
	if got.MeltValue != 10.85 {
		t.Errorf("MeltValue = %v, want 10.85", got.MeltValue)
	}
	if got.MeltPayout != 8.68 {
		t.Errorf("MeltPayout = %v, want 8.68", got.MeltPayout)
	}
	if got.EffectiveCost != 40 {
		t.Errorf("EffectiveCost = %v, want 40", got.EffectiveCost)
	}
	if got.Profit != -31.32 {
		t.Errorf("Profit = %v, want -31.32", got.Profit)
	}
	if got.MarginPct != -78.3 {
		t.Errorf("MarginPct = %v, want -78.3", got.MarginPct)
	}
	if got.RecMaxTotal != 7.75 {
		t.Errorf("RecMaxTotal = %v, want 7.75", got.RecMaxTotal)
	}
	if got.RecMaxItem != 2.75 {
		t.Errorf("RecMaxItem = %v, want 2.75", got.RecMaxItem)
	}
	// Listing priced above rec-max, so downstream HIT must be false.
	if l.TotalPrice <= got.RecMaxTotal {
		t.Error("listing should be priced above recommended max")
	}
}

func TestCalculateIsPure(t *testing.T) {
	l := domain.Listing{Title: "Lot of 2 Morgan Dollar 1884", TotalPrice: 90, Shipping: 4.5, Bids: 3}
	p := Params{SpotPrice: 28.5, PayoutPct: 82, MinMarginPct: 12, BidOffset: 1}

	first := Calculate(l, p)
	for range 5 {
		if again := Calculate(l, p); !reflect.DeepEqual(first, again) {
			t.Fatalf("Calculate is not idempotent: %+v != %+v", first, again)
		}
	}
}

func TestCalculateRecMaxMonotonicInMinMargin(t *testing.T) {
	l := domain.Listing{Title: "1921 Morgan Dollar", TotalPrice: 30, Quantity: 1}

	prev := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: 0}).RecMaxTotal
	for _, margin := range []float64{5, 10, 20, 40, 80} {
		cur := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: margin}).RecMaxTotal
		if cur > prev {
			t.Errorf("RecMaxTotal increased from %v to %v at min margin %v", prev, cur, margin)
		}
		prev = cur
	}
}

func TestCalculateZeroMarginEqualsPayout(t *testing.T) {
	l := domain.Listing{Title: "1921 Morgan Dollar", TotalPrice: 30, Quantity: 1}

	for _, margin := range []float64{0, -5} {
		got := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: margin})
		if got.RecMaxTotal != got.MeltPayout {
			t.Errorf("min margin %v: RecMaxTotal = %v, want melt payout %v", margin, got.RecMaxTotal, got.MeltPayout)
		}
		if got.ProfitAtRecMax != 0 {
			t.Errorf("min margin %v: ProfitAtRecMax = %v, want 0", margin, got.ProfitAtRecMax)
		}
	}
}

func TestCalculateZeroCostMargin(t *testing.T) {
	l := domain.Listing{Title: "free half dollar", TotalPrice: 0, Quantity: 1}
	got := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80})

	if got.MarginPct != 0 {
		t.Errorf("MarginPct = %v, want 0 for non-positive cost", got.MarginPct)
	}
}

func TestCalculateInfersQuantityAndWeight(t *testing.T) {
	l := domain.Listing{Title: "Lot of 4 Morgan Dollars, circulated", TotalPrice: 120}
	got := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: 12})

	if got.Quantity != 4 {
		t.Errorf("Quantity = %d, want 4 (inferred)", got.Quantity)
	}
	if got.OzPerCoin != ASWSilverDollar {
		t.Errorf("OzPerCoin = %v, want %v (inferred)", got.OzPerCoin, ASWSilverDollar)
	}
	if got.TotalOz != domain.RoundWeight(4*ASWSilverDollar) {
		t.Errorf("TotalOz = %v, want %v", got.TotalOz, 4*ASWSilverDollar)
	}
}

func TestCalculateRecMaxItemFloorsAtZero(t *testing.T) {
	l := domain.Listing{Title: "half dollar", TotalPrice: 20, Shipping: 50, Quantity: 1}
	got := Calculate(l, Params{SpotPrice: 30, PayoutPct: 80, MinMarginPct: 12})

	if got.RecMaxItem != 0 {
		t.Errorf("RecMaxItem = %v, want 0 when shipping exceeds rec max", got.RecMaxItem)
	}
}
