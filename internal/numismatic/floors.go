package numismatic

// staticFloors are conservative G-VG floor values keyed by benchmark
// key. They let numismatic detection trigger before the EMA store has
// learned anything. Add only values a local dealer would honor as a
// floor; an absent key disables the static fallback for that identity.
var staticFloors = map[string]float64{
	"Morgan Dollar|1881|CC": 443.00,
}

// StaticFloor returns the static FMV floor for a benchmark key.
func StaticFloor(key string) (float64, bool) {
	v, ok := staticFloors[key]
	return v, ok
}
