package engine

import (
	"testing"
	"time"

	"github.com/argentix/silverwatch/internal/domain"
	"github.com/argentix/silverwatch/internal/melt"
	"github.com/argentix/silverwatch/internal/prospect"
)

var testNow = time.Unix(1765618492, 0)

type fakeBenchmarks struct {
	entries map[string][2]float64 // key -> [ema, observers]
}

func (f *fakeBenchmarks) Lookup(key string) (float64, int, bool) {
	e, ok := f.entries[key]
	if !ok {
		return 0, 0, false
	}
	return e[0], int(e[1]), true
}

func testConfig() Config {
	return Config{
		Melt: melt.Params{
			SpotPrice:    30,
			PayoutPct:    80,
			MinMarginPct: 12,
		},
		NumismaticPayoutPct: 60,
		Prospect: prospect.Config{
			Cat3TolerancePct: 5,
			Cat3Bonus:        35,
			Cat3RequireSoon:  true,
			Cat3MaxMinutes:   30,
		},
		ProsMaxTotal:           150,
		ProsMinDealerMarginPct: 15,
		ProsMinScore:           70,
	}
}

func TestEvaluateMeltHit(t *testing.T) {
	// Half dollar: payout 8.68, rec max at 12% margin 7.75.
	listings := []domain.Listing{
		{Title: "1921 Walking Liberty Half Dollar", TotalPrice: 5, ItemPrice: 4, Shipping: 1, Quantity: 1},
	}

	out, stats := Evaluate(listings, &fakeBenchmarks{}, testConfig(), testNow)

	if len(out) != 1 {
		t.Fatalf("got %d evaluated, want 1", len(out))
	}
	if !out[0].IsHit {
		t.Errorf("IsHit = false, want true at total %.2f vs rec max %.2f",
			out[0].Listing.TotalPrice, out[0].Melt.RecMaxTotal)
	}
	if stats.Hits != 1 {
		t.Errorf("stats.Hits = %d, want 1", stats.Hits)
	}
}

func TestEvaluateHitIgnoresNumismaticStatus(t *testing.T) {
	// Overpriced for melt but a strong prospect: must not become a hit.
	src := &fakeBenchmarks{entries: map[string][2]float64{
		"Morgan Dollar|1881|CC": {510, 30},
	}}
	listings := []domain.Listing{
		{Title: "1881 CC Morgan Dollar", TotalPrice: 100, ItemPrice: 95, Shipping: 5, Quantity: 1},
	}

	out, stats := Evaluate(listings, src, testConfig(), testNow)

	ev := out[0]
	if ev.IsHit {
		t.Error("IsHit = true, melt rec max should gate it out")
	}
	if !ev.IsProspect {
		t.Fatalf("IsProspect = false, want true; numismatic = %+v", ev.Numismatic)
	}
	if ev.Numismatic == nil {
		t.Fatal("Numismatic = nil, want populated overlay")
	}
	if ev.Numismatic.Override != "Morgan Dollar 1881-CC" {
		t.Errorf("Override = %q", ev.Numismatic.Override)
	}
	if ev.Numismatic.FMVFloor == nil || *ev.Numismatic.FMVFloor != 510 {
		t.Errorf("FMVFloor = %v, want 510", ev.Numismatic.FMVFloor)
	}
	if ev.Numismatic.DealerValue == nil || *ev.Numismatic.DealerValue != 306 {
		t.Errorf("DealerValue = %v, want 306", ev.Numismatic.DealerValue)
	}
	if ev.Numismatic.CoinbookURL != "https://www.usacoinbook.com/coins/dollars/morgan/" {
		t.Errorf("CoinbookURL = %q", ev.Numismatic.CoinbookURL)
	}
	if stats.OverridesResolved != 1 || stats.FloorsFromEMA != 1 || stats.Prospects != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestEvaluateNoFloorKeepsOverride(t *testing.T) {
	// Identity resolves but neither EMA nor static table has a floor:
	// the override annotation stays, the economics do not.
	listings := []domain.Listing{
		{Title: "1921 Morgan Silver Dollar VG", TotalPrice: 40, Quantity: 1},
	}

	out, stats := Evaluate(listings, &fakeBenchmarks{}, testConfig(), testNow)

	num := out[0].Numismatic
	if num == nil {
		t.Fatal("Numismatic = nil, want override overlay without a floor")
	}
	if num.Override != "Morgan Dollar 1921-P" {
		t.Errorf("Override = %q", num.Override)
	}
	if num.CoinbookURL != "https://www.usacoinbook.com/coins/dollars/morgan/" {
		t.Errorf("CoinbookURL = %q", num.CoinbookURL)
	}
	if num.FMVFloor != nil || num.DealerValue != nil || num.DealerMarginPct != nil {
		t.Errorf("economics populated without a floor: %+v", num)
	}
	if len(num.ScoreReasons) != 1 || num.ScoreReasons[0] != "missing-anchors" {
		t.Errorf("ScoreReasons = %v, want [missing-anchors]", num.ScoreReasons)
	}
	if out[0].IsProspect {
		t.Error("IsProspect = true, want false without a floor")
	}
	if stats.IdentityNoFloor != 1 || stats.OverridesResolved != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestEvaluateSpendCap(t *testing.T) {
	src := &fakeBenchmarks{entries: map[string][2]float64{
		"Morgan Dollar|1881|CC": {510, 30},
	}}
	listings := []domain.Listing{
		{Title: "1881 CC Morgan Dollar", TotalPrice: 100, Quantity: 1},
	}

	cfg := testConfig()
	cfg.ProsMaxTotal = 50
	out, _ := Evaluate(listings, src, cfg, testNow)

	if out[0].IsProspect {
		t.Error("IsProspect = true, spend cap should gate it out")
	}
	if out[0].Numismatic == nil {
		t.Error("Numismatic = nil, overlay should still be populated")
	}

	cfg.ProsMaxTotal = 0 // disabled
	out, _ = Evaluate(listings, src, cfg, testNow)
	if !out[0].IsProspect {
		t.Error("IsProspect = false, zero cap should disable gating")
	}
}

func TestEvaluateScoreGate(t *testing.T) {
	src := &fakeBenchmarks{entries: map[string][2]float64{
		"Morgan Dollar|1881|CC": {510, 30},
	}}
	listings := []domain.Listing{
		{Title: "1881 CC Morgan Dollar", TotalPrice: 100, Quantity: 1},
	}

	cfg := testConfig()
	cfg.ProsMinScore = 95
	out, _ := Evaluate(listings, src, cfg, testNow)

	if out[0].IsProspect {
		t.Errorf("IsProspect = true with score %d below gate 95", out[0].Numismatic.Score)
	}
}

func TestEvaluateSortsByTimeToEnd(t *testing.T) {
	listings := []domain.Listing{
		{Title: "a", ItemID: "a", TotalPrice: 10, Quantity: 1, EndTimeTS: 300},
		{Title: "b", ItemID: "b", TotalPrice: 10, Quantity: 1, EndTimeTS: 100},
		{Title: "c", ItemID: "c", TotalPrice: 10, Quantity: 1, EndTimeTS: 200},
		{Title: "d", ItemID: "d", TotalPrice: 10, Quantity: 1}, // unknown end
	}

	out, _ := Evaluate(listings, &fakeBenchmarks{}, testConfig(), testNow)

	var order []string
	for _, ev := range out {
		order = append(order, ev.Listing.ItemID)
	}
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSelectForAlert(t *testing.T) {
	evaluated := []domain.Evaluated{
		{Listing: domain.Listing{ItemID: "1"}, IsHit: true},
		{Listing: domain.Listing{ItemID: "2"}}, // neither
		{Listing: domain.Listing{ItemID: "3"}, IsProspect: true},
		{Listing: domain.Listing{ItemID: "1"}, IsHit: true}, // duplicate key
	}

	got := SelectForAlert(evaluated)

	if len(got) != 2 {
		t.Fatalf("got %d selected, want 2", len(got))
	}
	if got[0].Listing.ItemID != "1" || got[1].Listing.ItemID != "3" {
		t.Errorf("selected ids = %s, %s", got[0].Listing.ItemID, got[1].Listing.ItemID)
	}
}

func TestSelectForAlertEmpty(t *testing.T) {
	if got := SelectForAlert(nil); len(got) != 0 {
		t.Errorf("got %d selected from nil input", len(got))
	}
}
