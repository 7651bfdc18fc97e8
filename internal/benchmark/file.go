package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
)

// On-disk layout is a fixed external contract: a JSON object with
// sorted keys, one key per line, each value a compact single-line
// 5-element array [ema, samples, last_total, last_updated, observers],
// and a trailing newline. Load(Save(x)) == x.

// Load reads a store from path. A missing or corrupt file yields an
// empty store (fail-open): the benchmark is self-learned and the next
// cycles simply rebuild it. Malformed rows are skipped.
func Load(path string, alpha, bumpPct float64) *Store {
	s := NewStore(alpha, bumpPct)

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var raw map[string][]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}

	for key, row := range raw {
		if len(row) < 5 {
			continue
		}
		ema, err0 := row[0].Float64()
		samples, err1 := row[1].Int64()
		last, err2 := row[2].Float64()
		updated, err3 := row[3].Int64()
		observers, err4 := row[4].Int64()
		if err0 != nil || err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		if samples < 1 {
			continue
		}
		s.entries[key] = Entry{
			EMAPrice:       ema,
			Samples:        int(samples),
			LastTotalPrice: last,
			LastUpdated:    updated,
			ObserversTotal: int(observers),
		}
	}
	return s
}

// Save writes the store to path in the canonical layout. Write failures
// are returned to the caller, never swallowed.
func (s *Store) Save(path string) error {
	keys := lo.Keys(s.entries)
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range keys {
		e := s.entries[key]

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("encoding benchmark key %q: %w", key, err)
		}
		valJSON, err := json.Marshal([]any{e.EMAPrice, e.Samples, e.LastTotalPrice, e.LastUpdated, e.ObserversTotal})
		if err != nil {
			return fmt.Errorf("encoding benchmark entry %q: %w", key, err)
		}

		buf.WriteString("  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(valJSON)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing price store %s: %w", path, err)
	}
	return nil
}
