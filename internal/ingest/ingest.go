// Package ingest loads normalized listing batches from the watch
// folder. Batches are JSON files produced by the external scraper; one
// file holds one array of listings.
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/argentix/silverwatch/internal/domain"
)

// Discover returns the batch files in folder, sorted by name so cycles
// consume batches in capture order.
func Discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile decodes one batch file and normalizes every listing.
func LoadFile(path string) ([]domain.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode batch file: %w", err)
	}

	for i := range listings {
		listings[i] = Normalize(listings[i])
	}
	return listings, nil
}

// Load gathers all batches from folder. Undecodable files are logged
// and skipped; they are not reported as processed so they stay on disk
// for inspection. Returns the combined listings and the files that were
// consumed successfully.
func Load(folder string) ([]domain.Listing, []string, error) {
	files, err := Discover(folder)
	if err != nil {
		return nil, nil, err
	}

	var all []domain.Listing
	var processed []string
	for _, f := range files {
		listings, err := LoadFile(f)
		if err != nil {
			slog.Warn("skipping unreadable batch file",
				"path", f,
				"error", err)
			continue
		}
		all = append(all, listings...)
		processed = append(processed, f)
	}
	return all, processed, nil
}

// Remove deletes processed batch files, best effort.
func Remove(files []string) {
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			slog.Warn("failed to delete processed batch file",
				"path", f,
				"error", err)
		}
	}
}

// Normalize repairs boundary data: negative shipping and bid counts
// clamp to zero, and a missing total price is rebuilt from item price
// plus shipping. Quantity and oz-per-coin stay as delivered; the melt
// calculator infers them from the title when absent.
func Normalize(l domain.Listing) domain.Listing {
	l.Title = strings.TrimSpace(l.Title)
	if l.Shipping < 0 {
		l.Shipping = 0
	}
	if l.Bids < 0 {
		l.Bids = 0
	}
	if l.Quantity < 0 {
		l.Quantity = 0
	}
	if l.TotalPrice <= 0 && l.ItemPrice > 0 {
		l.TotalPrice = domain.RoundCurrency(l.ItemPrice + l.Shipping)
	}
	return l
}
