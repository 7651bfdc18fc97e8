// Package archive persists evaluated scan cycles to PostgreSQL so
// past verdicts can be inspected and exported after the fact.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested scan cycle was not found.
var ErrNotFound = errors.New("scan cycle not found")

// Cycle is one stored scan cycle.
type Cycle struct {
	ID        int             `json:"id"`
	CycleDate time.Time       `json:"cycleDate"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for scan cycles. One row per
// calendar date; re-archiving a date replaces its payload.
type Repository interface {
	Save(ctx context.Context, date time.Time, data json.RawMessage) error
	GetLatest(ctx context.Context) (*Cycle, error)
	GetByDate(ctx context.Context, date time.Time) (*Cycle, error)
	List(ctx context.Context, limit int) ([]Cycle, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL scan cycle repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, date time.Time, data json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO scan_cycles (cycle_date, data)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (cycle_date)
		 DO UPDATE SET data = $2::jsonb`,
		date, data)
	if err != nil {
		return fmt.Errorf("saving scan cycle: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context) (*Cycle, error) {
	var c Cycle
	err := r.pool.QueryRow(ctx,
		`SELECT id, cycle_date, data, created_at
		 FROM scan_cycles
		 ORDER BY cycle_date DESC
		 LIMIT 1`).Scan(&c.ID, &c.CycleDate, &c.Data, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest scan cycle: %w", err)
	}
	return &c, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, date time.Time) (*Cycle, error) {
	var c Cycle
	err := r.pool.QueryRow(ctx,
		`SELECT id, cycle_date, data, created_at
		 FROM scan_cycles
		 WHERE cycle_date = $1`, date).Scan(&c.ID, &c.CycleDate, &c.Data, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting scan cycle by date: %w", err)
	}
	return &c, nil
}

func (r *PgRepository) List(ctx context.Context, limit int) ([]Cycle, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, cycle_date, data, created_at
		 FROM scan_cycles
		 ORDER BY cycle_date DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing scan cycles: %w", err)
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.CycleDate, &c.Data, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scan cycles: %w", err)
	}
	return cycles, nil
}
