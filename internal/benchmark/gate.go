package benchmark

import (
	"fmt"
	"regexp"
	"strings"
)

// The EMA baseline is raw single-coin G/VG material. Anything that
// suggests a lot, an accessory, damage, a slab or sales hype would
// poison the benchmark, so those titles never reach the smoothing math.
var captureDisqualifyKeywords = []string{
	// multi / bulk / bundle language
	"lot", "lots", "group", "collection", "estate", "hoard",
	"mixed", "bundle", "set", "roll", "bag", "coins", "face value",

	// grade / hype / special surfaces
	"bu", "brilliant uncirculated", "unc", "uncirculated",
	"au", "xf", "ef", "ms", "choice", "gem",
	"pl", "dmpl", "proof",

	// slabs / certs
	"pcgs", "ngc", "anacs", "icg", "slab", "graded", "certified", "holder",

	// non-coin accessories and damage
	"no coins", "coin book", "folder", "album", "book",
	"money clip", "clip", "keychain", "cutout", "pendant", "necklace", "jewelry",
	"holed", "hole", "pierced", "drilled",
}

var captureDisqualifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\s*x\b`),
	regexp.MustCompile(`\b\d+\s*(?:coin|coins|pc|pcs|piece|pieces)\b`),
	regexp.MustCompile(`\blot\s*(?:of\s*)?\d+\b`),
	regexp.MustCompile(`\bms\s*\d{2}\b`),
	regexp.MustCompile(`\bpf\s*\d{2}\b`),
}

// keywordRE matches any disqualify keyword on word boundaries, so "au"
// rejects the grade token without rejecting e.g. "auction".
var keywordRE = compileKeywords(captureDisqualifyKeywords)

func compileKeywords(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(fmt.Sprintf(`\b(?:%s)\b`, strings.Join(quoted, "|")))
}

// captureEligibleTitle reports whether a title may contribute to the
// EMA. Empty titles are never eligible.
func captureEligibleTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	if keywordRE.MatchString(t) {
		return false
	}
	for _, re := range captureDisqualifyPatterns {
		if re.MatchString(t) {
			return false
		}
	}
	return true
}
