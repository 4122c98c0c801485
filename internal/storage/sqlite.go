// Package storage provides SQLite-based persistence for food spawn runs
// and snake game scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-world/internal/world"
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// RunSummary is one recorded spawn run. Level state itself is never stored.
type RunSummary struct {
	ID        int64
	RunID     string // ULID
	Seed      int64
	Width     uint16
	Height    uint16
	Offset    uint16
	Spawned   int
	Cherries  int
	Mice      int
	Bombs     int
	NetMeals  int
	CreatedAt time.Time
}

// SummaryFromTally builds a RunSummary for a level's dimensions and a tally
// of the foods spawned into it. RunID is left empty for SaveRun to fill.
func SummaryFromTally(seed int64, width, height, offset uint16, t *world.Tally) RunSummary {
	return RunSummary{
		Seed:     seed,
		Width:    width,
		Height:   height,
		Offset:   offset,
		Spawned:  t.Total,
		Cherries: t.Count(world.Cherry),
		Mice:     t.Count(world.Mouse),
		Bombs:    t.Count(world.Bomb),
		NetMeals: t.NetMeals,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			spawn_offset INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			cherries INTEGER NOT NULL DEFAULT 0,
			mice INTEGER NOT NULL DEFAULT 0,
			bombs INTEGER NOT NULL DEFAULT 0,
			net_meals INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL DEFAULT 0,
			eaten INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRunID returns a fresh ULID string.
func (s *Store) NewRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// SaveRun records a run summary. An empty RunID is replaced with a new ULID.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunSummary) (int64, error) {
	if run.RunID == "" {
		run.RunID = s.NewRunID()
	} else if _, err := ulid.ParseStrict(run.RunID); err != nil {
		return 0, fmt.Errorf("storage: invalid run id %q: %w", run.RunID, err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, seed, width, height, spawn_offset, spawned, cherries, mice, bombs, net_meals)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Seed, run.Width, run.Height, run.Offset,
		run.Spawned, run.Cherries, run.Mice, run.Bombs, run.NetMeals,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, seed, width, height, spawn_offset, spawned, cherries, mice, bombs, net_meals, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunSummary, error) {
	var r RunSummary
	var createdAt any
	err := row.Scan(
		&r.ID, &r.RunID, &r.Seed, &r.Width, &r.Height, &r.Offset,
		&r.Spawned, &r.Cherries, &r.Mice, &r.Bombs, &r.NetMeals,
		&createdAt,
	)
	if err != nil {
		return r, err
	}

	r.CreatedAt = parseCreatedAt(createdAt)
	return r, nil
}

// parseCreatedAt handles both time.Time and string datetimes.
func parseCreatedAt(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ULID. Returns nil, nil when no run matches.
func (s *Store) RunByID(runID string) (*RunSummary, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// KindTotals sums spawned foods per kind across all recorded runs.
func (s *Store) KindTotals() (map[world.FoodKind]int, error) {
	var cherries, mice, bombs int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(cherries), 0), COALESCE(SUM(mice), 0), COALESCE(SUM(bombs), 0) FROM runs`,
	).Scan(&cherries, &mice, &bombs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get kind totals: %w", err)
	}

	return map[world.FoodKind]int{
		world.Cherry: cherries,
		world.Mouse:  mice,
		world.Bomb:   bombs,
	}, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
