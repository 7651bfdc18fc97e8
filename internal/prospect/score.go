// Package prospect scores numismatic upside: a deterministic, linear
// additive score over title-driven signals with hard disqualifiers that
// short-circuit. No store access, no side effects.
package prospect

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/argentix/silverwatch/internal/domain"
)

// ReasonCat3 is the category-3 override tag: premium/high-grade
// language priced like a raw coin. The hit engine accepts it as an
// alternate qualification path when the dealer-margin gate fails.
const ReasonCat3 = "premium-terms-priced-like-raw"

// Config holds the tunable scoring knobs. Keyword lists are fixed in
// this package; the knobs control the category-3 override only.
type Config struct {
	Cat3TolerancePct float64 // price tolerance above FMV floor
	Cat3Bonus        int
	Cat3RequireSoon  bool
	Cat3MaxMinutes   int
}

const baseScore = 50

// Score computes the prospect score for one listing. It is a pure
// function of the listing, the anchors, the configuration and the
// reference time. Returns a score in [0,100] and the ordered reason
// tags that produced it.
func Score(l domain.Listing, fmvFloor, dealerValue *float64, cfg Config, now time.Time) (int, []string) {
	// Anchor gate
	if fmvFloor == nil || dealerValue == nil || l.TotalPrice <= 0 {
		return 0, []string{"missing-anchors"}
	}

	// Hard disqualifiers short-circuit
	if hasAny(hardDisqualifyRE, l.Title) {
		return 0, []string{"pros-hard-disqualify-keyword"}
	}
	for _, re := range hardDisqualifyPatterns {
		if re.MatchString(l.Title) {
			return 0, []string{"pros-hard-disqualify-regex"}
		}
	}

	score := baseScore
	var reasons []string

	// Dealer margin, the primary signal
	dealerMarginPct := (*dealerValue - l.TotalPrice) / l.TotalPrice * 100
	switch {
	case dealerMarginPct >= 75:
		score += 25
		reasons = append(reasons, "huge-dealer-margin")
	case dealerMarginPct >= 50:
		score += 18
		reasons = append(reasons, "dealer-margin>=50")
	case dealerMarginPct >= 35:
		score += 10
		reasons = append(reasons, "dealer-margin>=35")
	case dealerMarginPct >= 20:
		score += 4
		reasons = append(reasons, "dealer-margin>=20")
	default:
		score -= 20
		reasons = append(reasons, "thin-dealer-margin")
	}

	// FMV gap, secondary
	fmvGapPct := (*fmvFloor - l.TotalPrice) / l.TotalPrice * 100
	switch {
	case fmvGapPct >= 100:
		score += 10
		reasons = append(reasons, "fmv-gap>=100")
	case fmvGapPct >= 50:
		score += 6
		reasons = append(reasons, "fmv-gap>=50")
	}

	// Bid count: confidence vs. unnoticed
	switch {
	case l.Bids <= 0:
		score += 4
		reasons = append(reasons, "unnoticed(0-bids)")
	case l.Bids <= 2:
		score += 7
		reasons = append(reasons, "few-bids")
	case l.Bids <= 10:
		score += 4
		reasons = append(reasons, "some-bids")
	default:
		score += 1
		reasons = append(reasons, "many-bids")
	}

	// Title quality signals
	if hasAny(hypeRE, l.Title) {
		score -= 18
		reasons = append(reasons, "hype-language")
	}
	if hasAny(underdescribedRE, l.Title) {
		score += 12
		reasons = append(reasons, "under-described")
	}

	highGrade := hasAny(highGradeRE, l.Title)
	if highGrade {
		score -= 14
		reasons = append(reasons, "high-grade-signals")
	}

	// Category-3 override: premium terms priced like raw
	if highGrade && l.TotalPrice <= *fmvFloor*(1+max(0, cfg.Cat3TolerancePct)/100) {
		soonOK := true
		if cfg.Cat3RequireSoon {
			mins, ok := minutesLeft(l, now)
			soonOK = ok && mins <= cfg.Cat3MaxMinutes
		}
		if soonOK {
			score += max(0, cfg.Cat3Bonus)
			reasons = append(reasons, ReasonCat3)
		}
	}

	// Time-left urgency, minor
	tleft := strings.ToLower(l.TimeLeft)
	if strings.Contains(tleft, "m left") || strings.Contains(tleft, "min") {
		score += 3
		reasons = append(reasons, "ending-soon")
	}

	score = min(100, max(0, score))
	return score, reasons
}

var (
	minutesShortRE = regexp.MustCompile(`(\d{1,4})\s*m\b`)
	minutesLongRE  = regexp.MustCompile(`(\d{1,3})\s*min\b`)
)

// minutesLeft derives minutes-to-end from the end timestamp when
// present, falling back to simple "Xm left" / "X min" strings.
func minutesLeft(l domain.Listing, now time.Time) (int, bool) {
	if l.HasEndTime() {
		sec := l.EndTimeTS - now.Unix()
		if sec >= 0 {
			return int(sec / 60), true
		}
	}

	s := strings.ToLower(l.TimeLeft)
	if m := minutesShortRE.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := minutesLongRE.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}
