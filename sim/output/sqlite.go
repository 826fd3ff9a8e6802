package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/abm-sim/abm-sim/sim"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    rng_seed INTEGER NOT NULL,
    n_total INTEGER NOT NULL,
    days_of_interactions INTEGER NOT NULL,
    end_time INTEGER NOT NULL,
    total_infected INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS timeseries (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    new_infections INTEGER NOT NULL,
    total_infected INTEGER NOT NULL,
    n_interactions INTEGER NOT NULL,
    dropped_slots INTEGER NOT NULL,
    mean_degree REAL NOT NULL,
    degree_variance REAL NOT NULL,
    PRIMARY KEY (run_id, day)
);
`

// RunRecord identifies one stored run.
type RunRecord struct {
	ID                 string
	RNGSeed            int64
	NTotal             int64
	DaysOfInteractions int
	EndTime            int
	TotalInfected      int64
	CreatedAt          time.Time
}

// NewRunRecord describes a run of params with a fresh run ID.
func NewRunRecord(params sim.Parameters, totalInfected int64) RunRecord {
	return RunRecord{
		ID:                 uuid.NewString(),
		RNGSeed:            params.RNGSeed,
		NTotal:             params.NTotal,
		DaysOfInteractions: params.DaysOfInteractions,
		EndTime:            params.EndTime,
		TotalInfected:      totalInfected,
		CreatedAt:          time.Now().UTC(),
	}
}

// ResultStore keeps run time series in a SQLite database.
type ResultStore struct {
	db *sql.DB
}

// OpenResultStore opens (or creates) the database at path and ensures the schema.
func OpenResultStore(ctx context.Context, path string) (*ResultStore, error) {
	if path == "" {
		return nil, errors.New("results database path is required")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing results schema: %w", err)
	}
	return &ResultStore{db: db}, nil
}

// SaveRun stores the run and its rows in one transaction.
func (s *ResultStore) SaveRun(ctx context.Context, run RunRecord, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, rng_seed, n_total, days_of_interactions, end_time, total_infected, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.RNGSeed, run.NTotal, run.DaysOfInteractions, run.EndTime, run.TotalInfected,
		run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO timeseries (run_id, day, new_infections, total_infected, n_interactions, dropped_slots, mean_degree, degree_variance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing time series insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, run.ID, r.Day, r.NewInfections, r.TotalInfections,
			r.Interactions, r.DroppedSlots, r.MeanDegree, r.DegreeVariance); err != nil {
			return fmt.Errorf("inserting day %d of run %s: %w", r.Day, run.ID, err)
		}
	}
	return tx.Commit()
}

// GetRun loads a stored run and its rows ordered by day.
// Returns ok=false when no run has the given ID.
func (s *ResultStore) GetRun(ctx context.Context, id string) (RunRecord, []Row, bool, error) {
	var run RunRecord
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, rng_seed, n_total, days_of_interactions, end_time, total_infected, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.RNGSeed, &run.NTotal, &run.DaysOfInteractions, &run.EndTime, &run.TotalInfected, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, nil, false, nil
		}
		return RunRecord{}, nil, false, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return RunRecord{}, nil, false, fmt.Errorf("decode created_at of run %s: %w", id, err)
	}

	rs, err := s.db.QueryContext(ctx, `
		SELECT day, new_infections, total_infected, n_interactions, dropped_slots, mean_degree, degree_variance
		FROM timeseries WHERE run_id = ? ORDER BY day
	`, id)
	if err != nil {
		return RunRecord{}, nil, false, err
	}
	defer rs.Close()

	var rows []Row
	for rs.Next() {
		var r Row
		if err := rs.Scan(&r.Day, &r.NewInfections, &r.TotalInfections, &r.Interactions,
			&r.DroppedSlots, &r.MeanDegree, &r.DegreeVariance); err != nil {
			return RunRecord{}, nil, false, err
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return RunRecord{}, nil, false, err
	}
	return run, rows, true, nil
}

// Close releases the database handle.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
