package melt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Actual silver weight (troy oz) per coin for the series this project tracks.
const (
	ASWHalfDollar   = 0.36169
	ASWSilverDollar = 0.77344
	ASWSilverEagle  = 0.99
)

// Quantity bounds. The bulk-tolerant limit exists for roll/bag markets
// where three-digit counts are legitimate.
const (
	maxQuantity             = 199
	maxQuantityBulkTolerant = 600
)

// quantityLadder is a fixed-precedence rule ladder: the first pattern
// that matches decides, regardless of later patterns.
var quantityLadder = []*regexp.Regexp{
	regexp.MustCompile(`\blot\s+of\s+(\d{1,3})\b`),
	regexp.MustCompile(`\b(?:qty|quantity)[:\s]*(\d{1,3})\b`),
	regexp.MustCompile(`\b(\d{1,3})\s*x\b`),
	regexp.MustCompile(`\bx\s*(\d{1,3})\b`),
	regexp.MustCompile(`\b(\d{1,3})\s*(?:pcs|pc|pieces|piece|coins|coin)\b`),
}

var (
	halfDollarTokens  = []string{"half dollar", "half-dollar", "50c", "50¢"}
	silverEagleTokens = []string{"silver eagle", "american eagle"}
	dollarTokens      = []string{"$1", "dollar", "morgan", "peace"}
)

// ExtractQuantity extracts a coin count from a listing title using the
// fixed-precedence ladder. Matches outside the accepted range are
// skipped; with no usable match the quantity defaults to 1.
func ExtractQuantity(title string, bulkTolerant bool) int {
	if title == "" {
		return 1
	}
	maxQty := maxQuantity
	if bulkTolerant {
		maxQty = maxQuantityBulkTolerant
	}

	t := strings.ToLower(title)
	for _, re := range quantityLadder {
		m := re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if qty >= 1 && qty <= maxQty {
			return qty
		}
	}
	return 1
}

// DetectOzPerCoin classifies per-coin ASW from the title. Priority is
// fixed: explicit half-dollar markers, then eagles, then dollar series,
// then bare "seated" (conservative half assumption), then the default.
func DetectOzPerCoin(title string) float64 {
	t := strings.ToLower(title)

	contains := func(tok string) bool { return strings.Contains(t, tok) }

	if lo.SomeBy(halfDollarTokens, contains) {
		return ASWHalfDollar
	}
	if lo.SomeBy(silverEagleTokens, contains) {
		return ASWSilverEagle
	}
	if lo.SomeBy(dollarTokens, contains) {
		return ASWSilverDollar
	}
	if contains("seated") {
		return ASWHalfDollar
	}
	return ASWHalfDollar
}
