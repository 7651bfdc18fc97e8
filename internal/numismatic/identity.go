// Package numismatic resolves coin identities from listing titles and
// derives collector-value economics. Identity resolution is strict:
// classic series only, historically valid production years, and an
// explicit rejection of proofs and replicas.
package numismatic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Identity is a canonical coin identity parsed from a title.
type Identity struct {
	CoinType string
	Year     int
	Mint     string
}

// DisplayName renders the identity as shown in alerts, e.g.
// "Morgan Dollar 1921-P".
func (id Identity) DisplayName() string {
	return fmt.Sprintf("%s %d-%s", id.CoinType, id.Year, id.Mint)
}

// Key returns the canonical benchmark key for this identity.
func (id Identity) Key() string {
	return BenchmarkKey(id.CoinType, id.Year, id.Mint)
}

// series binds a title pattern to a canonical coin type and its
// historically valid production window.
type series struct {
	re       *regexp.Regexp
	coinType string
	minYear  int
	maxYear  int
}

var seriesTable = []series{
	{regexp.MustCompile(`(?i)\bmorgan\b`), "Morgan Dollar", 1878, 1921},
	{regexp.MustCompile(`(?i)\bpeace\b`), "Peace Dollar", 1921, 1935},
	{regexp.MustCompile(`(?i)\bbarber\b.*\bhalf\b`), "Barber Half", 1892, 1915},
	{regexp.MustCompile(`(?i)\bseated\b.*\bliberty\b.*\bhalf\b`), "Seated Liberty Half", 1839, 1891},
	{regexp.MustCompile(`(?i)\bseated\b.*\bliberty\b.*\bdollar\b`), "Seated Liberty Dollar", 1840, 1873},
	{regexp.MustCompile(`(?i)\bwalking\b.*\bliberty\b.*\bhalf\b|\bwalker\b.*\bhalf\b`), "Walking Liberty Half", 1916, 1947},
	{regexp.MustCompile(`(?i)\bfranklin\b.*\bhalf\b`), "Franklin Half", 1948, 1963},
	// Kennedy halves carry silver through 1970 (90% in 1964, 40% after).
	{regexp.MustCompile(`(?i)\b(?:kennedy|jfk)\b.*\bhalf\b`), "Kennedy Half", 1964, 1970},
}

var yearRE = regexp.MustCompile(`\b(17\d{2}|18\d{2}|19\d{2}|20\d{2})\b`)

// mintAdjacentRE matches a mint mark directly after the year, with an
// optional separator: "1884-CC", "1921 S", "1906 - O".
var mintAdjacentRE = regexp.MustCompile(`(?i)^[\s\-]*\(?(cc|[pdso])\)?\b`)

const defaultMint = "P"

// DetectIdentity parses a coin identity from a listing title. It
// returns ok=false for unknown series, years outside the series
// window, and proof/replica/copy listings. The mint mark defaults to
// "P" when absent.
func DetectIdentity(title string) (Identity, bool) {
	t := strings.TrimSpace(title)
	if t == "" {
		return Identity{}, false
	}

	tl := strings.ToLower(t)
	if strings.Contains(tl, "proof") || strings.Contains(tl, "replica") || strings.Contains(tl, "copy") {
		return Identity{}, false
	}

	var matched *series
	for i := range seriesTable {
		if seriesTable[i].re.MatchString(t) {
			matched = &seriesTable[i]
			break
		}
	}
	if matched == nil {
		return Identity{}, false
	}

	ym := yearRE.FindStringSubmatchIndex(t)
	if ym == nil {
		return Identity{}, false
	}
	year, _ := strconv.Atoi(t[ym[2]:ym[3]])
	if year < matched.minYear || year > matched.maxYear {
		return Identity{}, false
	}

	mint := defaultMint
	if mm := mintAdjacentRE.FindStringSubmatch(t[ym[3]:]); mm != nil {
		mint = normalizeMint(mm[1])
	}

	return Identity{CoinType: matched.coinType, Year: year, Mint: mint}, true
}

// BenchmarkKey builds the canonical "<CoinType>|<Year>|<Mint>" key used
// across the price memory and the static floor table.
func BenchmarkKey(coinType string, year int, mint string) string {
	return fmt.Sprintf("%s|%d|%s", coinType, year, normalizeMint(mint))
}

func normalizeMint(m string) string {
	m = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(m), " ", ""))
	switch m {
	case "":
		return defaultMint
	case "PHILADELPHIA":
		return "P"
	case "P", "D", "S", "O", "CC":
		return m
	}
	return m
}
