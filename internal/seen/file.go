package seen

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

type fileFormat struct {
	Version int      `json:"version"`
	Created int64    `json:"created"`
	Hits    []string `json:"hits"`
}

const fileVersion = 1

// Load reads a seen-hits file into a Set. A missing or unreadable file
// yields an empty set: losing dedup state means duplicate alerts, which
// is recoverable, while refusing to scan is not.
func Load(path string) *Set {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read seen-hits file, starting empty",
				"path", path,
				"error", err)
		}
		return NewSet(nil)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("failed to parse seen-hits file, starting empty",
			"path", path,
			"error", err)
		return NewSet(nil)
	}
	return NewSet(f.Hits)
}

// Save writes the set atomically enough for this use: a single
// WriteFile with sorted keys so successive saves of the same state are
// byte-identical.
func Save(path string, s *Set, now time.Time) error {
	hits := s.Keys()
	if hits == nil {
		hits = []string{}
	}

	data, err := json.Marshal(fileFormat{
		Version: fileVersion,
		Created: now.Unix(),
		Hits:    hits,
	})
	if err != nil {
		return fmt.Errorf("failed to encode seen-hits: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write seen-hits file: %w", err)
	}
	return nil
}
