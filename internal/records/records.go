// Package records keeps a local SQLite table of finished runs.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lostnaut/internal/game"
)

// Run is one play-through.
type Run struct {
	ID         int64
	StartedAt  time.Time
	Duration   float64 // seconds of game time
	Deaths     int
	Stomps     int
	Tasks      int
	Escaped    bool
	ReplayPath string
}

// FromSession summarizes s as it stands.
func FromSession(s *game.Session, started time.Time, replayPath string) Run {
	return Run{
		StartedAt:  started,
		Duration:   s.Stats.Time,
		Deaths:     s.Stats.Deaths,
		Stomps:     s.Stats.Stomps,
		Tasks:      s.Tasks.DoneCount(),
		Escaped:    s.Escaped(),
		ReplayPath: replayPath,
	}
}

type Store struct {
	db *sql.DB
}

// Open creates the database file and schema if needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("records: %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_s REAL NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			stomps INTEGER NOT NULL DEFAULT 0,
			tasks INTEGER NOT NULL DEFAULT 0,
			escaped INTEGER NOT NULL DEFAULT 0,
			replay_path TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS runs_rank ON runs (escaped DESC, tasks DESC, duration_s ASC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("records: schema: %w", err)
		}
	}
	return nil
}

// Save inserts r and returns its id.
func (s *Store) Save(ctx context.Context, r Run) (int64, error) {
	escaped := 0
	if r.Escaped {
		escaped = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_s, deaths, stomps, tasks, escaped, replay_path) VALUES (?,?,?,?,?,?,?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.Duration, r.Deaths, r.Stomps, r.Tasks, escaped, r.ReplayPath)
	if err != nil {
		return 0, fmt.Errorf("records: save: %w", err)
	}
	return res.LastInsertId()
}

// Best lists runs ranked by escape, then tasks done, then time, then
// deaths.
func (s *Store) Best(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_s, deaths, stomps, tasks, escaped, replay_path FROM runs
		 ORDER BY escaped DESC, tasks DESC, duration_s ASC, deaths ASC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("records: query: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started string
			escaped int
		)
		if err := rows.Scan(&r.ID, &started, &r.Duration, &r.Deaths, &r.Stomps, &r.Tasks, &escaped, &r.ReplayPath); err != nil {
			return nil, fmt.Errorf("records: scan: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("records: run %d: %w", r.ID, err)
		}
		r.Escaped = escaped != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
