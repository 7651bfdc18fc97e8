package numismatic

import "testing"

func TestDetectIdentity(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  Identity
		ok    bool
	}{
		{"morgan default mint", "1921 Morgan Silver Dollar VG", Identity{"Morgan Dollar", 1921, "P"}, true},
		{"morgan cc hyphenated", "1884-CC Morgan Silver Dollar", Identity{"Morgan Dollar", 1884, "CC"}, true},
		{"morgan cc spaced", "1881 CC Morgan Dollar", Identity{"Morgan Dollar", 1881, "CC"}, true},
		{"morgan s", "1892 S Morgan Dollar", Identity{"Morgan Dollar", 1892, "S"}, true},
		{"morgan out of window", "1922 Morgan Dollar", Identity{}, false},
		{"peace in window", "1923 Peace Dollar", Identity{"Peace Dollar", 1923, "P"}, true},
		{"peace word not mint", "1921 Peace Dollar high relief", Identity{"Peace Dollar", 1921, "P"}, true},
		{"peace out of window", "1936 Peace Dollar", Identity{}, false},
		{"barber half", "1905 S Barber Half Dollar", Identity{"Barber Half", 1905, "S"}, true},
		{"seated liberty half", "1853 Seated Liberty Half Dollar arrows", Identity{"Seated Liberty Half", 1853, "P"}, true},
		{"seated liberty dollar", "1860 O Seated Liberty Dollar", Identity{"Seated Liberty Dollar", 1860, "O"}, true},
		{"walking liberty", "1921 D Walking Liberty Half Dollar", Identity{"Walking Liberty Half", 1921, "D"}, true},
		{"walker shorthand", "1917 Walker Half", Identity{"Walking Liberty Half", 1917, "P"}, true},
		{"franklin", "1950 Franklin Half Dollar", Identity{"Franklin Half", 1950, "P"}, true},
		{"kennedy silver years", "1964 Kennedy Half Dollar", Identity{"Kennedy Half", 1964, "P"}, true},
		{"kennedy clad rejected", "1971 Kennedy Half Dollar", Identity{}, false},
		{"proof rejected", "1881 CC Morgan Dollar Proof", Identity{}, false},
		{"replica rejected", "1893 S Morgan Dollar replica", Identity{}, false},
		{"copy rejected", "1893-S Morgan Dollar COPY", Identity{}, false},
		{"no year", "Morgan Silver Dollar circulated", Identity{}, false},
		{"unknown series", "1916 Mercury Dime", Identity{}, false},
		{"empty title", "", Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectIdentity(tt.title)
			if ok != tt.ok {
				t.Fatalf("DetectIdentity(%q) ok = %v, want %v", tt.title, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("DetectIdentity(%q) = %+v, want %+v", tt.title, got, tt.want)
			}
		})
	}
}

func TestBenchmarkKey(t *testing.T) {
	tests := []struct {
		coinType string
		year     int
		mint     string
		want     string
	}{
		{"Morgan Dollar", 1921, "P", "Morgan Dollar|1921|P"},
		{"Morgan Dollar", 1884, "cc", "Morgan Dollar|1884|CC"},
		{"Peace Dollar", 1923, "", "Peace Dollar|1923|P"},
		{"Barber Half", 1905, "s", "Barber Half|1905|S"},
	}

	for _, tt := range tests {
		if got := BenchmarkKey(tt.coinType, tt.year, tt.mint); got != tt.want {
			t.Errorf("BenchmarkKey(%q, %d, %q) = %q, want %q", tt.coinType, tt.year, tt.mint, got, tt.want)
		}
	}
}

func TestIdentityDisplayName(t *testing.T) {
	id := Identity{CoinType: "Morgan Dollar", Year: 1884, Mint: "CC"}
	if got := id.DisplayName(); got != "Morgan Dollar 1884-CC" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestCoinbookURL(t *testing.T) {
	tests := []struct {
		coinType string
		want     string
		ok       bool
	}{
		{"Morgan Dollar", "https://www.usacoinbook.com/coins/dollars/morgan/", true},
		{"Walking Liberty Half", "https://www.usacoinbook.com/coins/half-dollars/walking-liberty/", true},
		{"Kennedy Half", "https://www.usacoinbook.com/coins/half-dollars/kennedy/", true},
		{"Trade Dollar", "https://www.usacoinbook.com/coins/dollars/trade/", true},
		{"Mercury Dime", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CoinbookURL(tt.coinType)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CoinbookURL(%q) = (%q, %v), want (%q, %v)", tt.coinType, got, ok, tt.want, tt.ok)
		}
	}
}
