package numismatic

import "fmt"

// FMV source labels shown in alerts.
const (
	SourceOfflineEMA    = "Offline EMA"
	SourceStaticDefault = "Static Default"
)

// BenchmarkSource is the read side of the EMA price memory.
type BenchmarkSource interface {
	Lookup(key string) (ema float64, observers int, ok bool)
}

// ResolveFMV resolves a fair-market-value floor for an identity with
// strict priority: learned EMA benchmark first, static floor table
// second, otherwise (nil, ""). The source label carries the cumulative
// observer total when the EMA provided the floor.
func ResolveFMV(src BenchmarkSource, id Identity) (*float64, string) {
	key := id.Key()

	if src != nil {
		if ema, observers, ok := src.Lookup(key); ok {
			label := SourceOfflineEMA
			if observers > 0 {
				label = fmt.Sprintf("%s o.%d", SourceOfflineEMA, observers)
			}
			return &ema, label
		}
	}

	if floor, ok := StaticFloor(key); ok {
		return &floor, SourceStaticDefault
	}

	return nil, ""
}
