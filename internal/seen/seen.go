// Package seen tracks which hits have already been surfaced across
// scan cycles so an alert fires once per listing, not once per cycle.
package seen

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/argentix/silverwatch/internal/domain"
)

// Key derives the stable dedup key for a listing. Marketplace item id
// wins when present; next the URL stripped of query and fragment,
// since tracking parameters vary between scrapes; last resort is the
// lowercased title.
func Key(l domain.Listing) string {
	if id := strings.TrimSpace(l.ItemID); id != "" {
		return "itm:" + id
	}
	if u := strings.TrimSpace(l.URL); u != "" {
		base, _, _ := strings.Cut(u, "?")
		base, _, _ = strings.Cut(base, "#")
		return "url:" + base
	}
	return "title:" + strings.ToLower(strings.TrimSpace(l.Title))
}

// Set is an in-memory collection of already-alerted hit keys.
type Set struct {
	keys map[string]struct{}
}

func NewSet(keys []string) *Set {
	s := &Set{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

func (s *Set) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Add records a key, reporting whether it was new.
func (s *Set) Add(key string) bool {
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the recorded keys in sorted order.
func (s *Set) Keys() []string {
	keys := lo.Keys(s.keys)
	slices.Sort(keys)
	return keys
}

// SplitNew partitions hits into never-seen and already-seen, recording
// the new ones in the set. Duplicate keys within one batch count as
// seen after the first occurrence.
func (s *Set) SplitNew(hits []domain.Evaluated) (fresh, repeats []domain.Evaluated) {
	for _, h := range hits {
		if s.Add(Key(h.Listing)) {
			fresh = append(fresh, h)
		} else {
			repeats = append(repeats, h)
		}
	}
	return fresh, repeats
}
