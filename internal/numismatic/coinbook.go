package numismatic

import "strings"

const coinbookBase = "https://www.usacoinbook.com/coins"

// coinbookPaths maps canonical series names to their denomination and
// slug on the external coin reference site.
var coinbookPaths = map[string][2]string{
	"Morgan Dollar":         {"dollars", "morgan"},
	"Peace Dollar":          {"dollars", "peace"},
	"Seated Liberty Dollar": {"dollars", "seated-liberty"},

	"Barber Half":          {"half-dollars", "barber"},
	"Seated Liberty Half":  {"half-dollars", "seated-liberty"},
	"Walking Liberty Half": {"half-dollars", "walking-liberty"},
	"Franklin Half":        {"half-dollars", "franklin"},
	"Kennedy Half":         {"half-dollars", "kennedy"},
}

// CoinbookURL maps a canonical series name to its external reference
// page. Unknown labels fall back to denomination inference from the
// label itself; ok=false when no denomination can be determined.
func CoinbookURL(coinType string) (string, bool) {
	if coinType == "" {
		return "", false
	}

	if p, ok := coinbookPaths[coinType]; ok {
		return coinbookBase + "/" + p[0] + "/" + p[1] + "/", true
	}

	ct := strings.ToLower(coinType)
	var denom string
	switch {
	case strings.Contains(ct, " half"):
		denom = "half-dollars"
	case strings.Contains(ct, " dollar"):
		denom = "dollars"
	default:
		return "", false
	}

	slug := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(ct, " dollar", ""), " half", ""))
	slug = strings.ReplaceAll(slug, " ", "-")
	if slug == "" {
		return "", false
	}
	return coinbookBase + "/" + denom + "/" + slug + "/", true
}
