package prospect

import (
	"fmt"
	"regexp"
	"strings"
)

// Hard disqualifiers: problem coins and unclear metal content. These
// short-circuit scoring to zero and are stricter than, and independent
// of, the EMA capture gate.
var hardDisqualifyKeywords = []string{
	"holed", "hole", "drilled", "pierced", "plugged",
	"bent", "damaged", "broken", "scratched", "details",
	"harshly cleaned", "cleaned",

	"plated", "clad", "silver plate", "silver plated",
	"silver tone", "silver toned", "gold tone", "gold toned",
}

// The replica family lives here rather than in the keyword list: these
// are the disqualifiers operators extend with their own patterns.
var hardDisqualifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:replica|copy|fantasy|reproduction)\b`),
}

// Sales language that usually means the premium is already priced in.
var hypeKeywords = []string{
	"monster", "wow", "elite", "superb", "amazing",
	"beautiful", "blazing", "choice", "gem", "premium", "rare", "key date",
	"no reserve", "clearance",
}

// Cues of a seller who does not know what they have.
var underdescribedKeywords = []string{
	"estate", "old collection", "attic", "found", "as is",
	"better date", "scarce date",
}

// Grade and slab marketing: priced-in premium unless the category-3
// mispricing override fires.
var highGradeKeywords = []string{
	"pcgs", "ngc", "anacs", "icg", "cac",
	"ms60", "ms61", "ms62", "ms63", "ms64", "ms65", "ms66", "ms67", "ms68", "ms69", "ms70", "ms",
	"au", "about uncirculated", "unc", "uncirculated", "bu", "brilliant uncirculated",
	"proof", "pr", "pf", "cameo", "deep cameo", "dcam", "ultra cameo", "ucam",
	"pl", "prooflike", "dmpl", "deep mirror prooflike",
	"gem", "choice", "blast white", "full bands", "full bell lines",
}

var (
	hardDisqualifyRE = compileKeywords(hardDisqualifyKeywords)
	hypeRE           = compileKeywords(hypeKeywords)
	underdescribedRE = compileKeywords(underdescribedKeywords)
	highGradeRE      = compileKeywords(highGradeKeywords)
)

func compileKeywords(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(fmt.Sprintf(`\b(?:%s)\b`, strings.Join(quoted, "|")))
}

func hasAny(re *regexp.Regexp, title string) bool {
	return re.MatchString(strings.ToLower(title))
}
