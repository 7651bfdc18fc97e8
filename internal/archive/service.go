package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/argentix/silverwatch/internal/domain"
	"github.com/argentix/silverwatch/internal/engine"
)

// CycleRecord is the archived payload: the full evaluated sequence
// plus the cycle diagnostics.
type CycleRecord struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Stats       engine.Stats       `json:"stats"`
	Evaluated   []domain.Evaluated `json:"evaluated"`
}

// Service manages scan cycle archiving and retrieval.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Archive stores one cycle's verdicts under its calendar date. A
// second cycle on the same date replaces the earlier record, keeping
// the freshest evaluation for that day.
func (s *Service) Archive(ctx context.Context, date time.Time, evaluated []domain.Evaluated, stats engine.Stats) error {
	record := CycleRecord{
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Evaluated:   evaluated,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling cycle record: %w", err)
	}

	if err := s.repo.Save(ctx, date, data); err != nil {
		return fmt.Errorf("archiving scan cycle: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent archived cycle.
func (s *Service) GetLatest(ctx context.Context) (*Cycle, error) {
	return s.repo.GetLatest(ctx)
}

// GetByDate retrieves the cycle archived for a specific date.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*Cycle, error) {
	return s.repo.GetByDate(ctx, date)
}

// List retrieves recent archived cycles.
func (s *Service) List(ctx context.Context, limit int) ([]Cycle, error) {
	return s.repo.List(ctx, limit)
}
