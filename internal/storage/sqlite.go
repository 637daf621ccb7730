// Package storage provides SQLite-based persistence for simulation run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run modes.
const (
	ModeTUI      = "tui"
	ModeHeadless = "headless"
	ModeSSH      = "ssh"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID         int64
	RunID      string // uuid, generated when empty
	Scene      string
	Mode       string
	Username   string
	Seed       int64
	Frames     int
	Duration   time.Duration
	Score      int
	Collisions int
	Entities   int
	CreatedAt  time.Time
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	Scene       string
	Runs        int
	BestScore   int
	AvgScore    float64
	TotalFrames int64
	LastRun     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	return OpenContext(context.Background(), dbPath)
}

// OpenContext is Open with a context bounding the migrations.
func OpenContext(ctx context.Context, dbPath string) (*Store, error) {
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
	// SQLite has a single writer; concurrent sessions queue on one connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the row ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Scene == "" {
		return 0, errors.New("storage: cannot save run: empty scene")
	}
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, scene, mode, username, seed, frames, duration_ms, score, collisions, entities)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Scene, r.Mode, r.Username, r.Seed, r.Frames,
		r.Duration.Milliseconds(), r.Score, r.Collisions, r.Entities,
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

// RecentRuns returns the newest runs, optionally filtered by scene.
func (s *Store) RecentRuns(scene string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, scene, mode, username, seed, frames, duration_ms,
		        score, collisions, entities, created_at
		 FROM runs
		 WHERE ? = '' OR scene = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scene, scene, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Scene, &r.Mode, &r.Username, &r.Seed, &r.Frames,
			&durationMS, &r.Score, &r.Collisions, &r.Entities, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its uuid. Returns nil if absent.
func (s *Store) RunByID(runID string) (*Run, error) {
	var r Run
	var durationMS int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, run_id, scene, mode, username, seed, frames, duration_ms,
		        score, collisions, entities, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	).Scan(
		&r.ID, &r.RunID, &r.Scene, &r.Mode, &r.Username, &r.Seed, &r.Frames,
		&durationMS, &r.Score, &r.Collisions, &r.Entities, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(scene string) (*SceneStats, error) {
	stats := &SceneStats{Scene: scene}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(frames), 0), MAX(created_at)
		 FROM runs WHERE scene = ?`,
		scene,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.TotalFrames, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// GetAllSceneStats retrieves statistics for every scene that has runs.
func (s *Store) GetAllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene, COUNT(*), MAX(score), AVG(score), SUM(frames), MAX(created_at)
		 FROM runs
		 GROUP BY scene`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastRun any
		if err := rows.Scan(&st.Scene, &st.Runs, &st.BestScore, &st.AvgScore, &st.TotalFrames, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Scene] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs of the given scene.
func (s *Store) ClearRuns(scene string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene = ?", scene)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
