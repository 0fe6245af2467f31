// Package persistence provides a SQLite ledger of generation runs.
// Only run summaries are stored; worlds are always regenerated from seed.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hex-terrain/internal/world"
)

var (
	// ErrNoRun is returned when no earlier run matches the parameters.
	ErrNoRun = errors.New("no recorded run")
	// ErrDigestMismatch is returned when a regenerated world differs from its record.
	ErrDigestMismatch = errors.New("world digest mismatch")
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Run is one recorded generation.
type Run struct {
	ID          string  `db:"id"`
	CreatedAt   int64   `db:"created_at"` // Unix seconds
	Seed        int64   `db:"seed"`
	Radius      int64   `db:"radius"`
	Basis       string  `db:"basis"`
	Octaves     int     `db:"octaves"`
	Lacunarity  float64 `db:"lacunarity"`
	Persistence float64 `db:"persistence"`
	Tiles       int     `db:"tiles"`
	Digest      string  `db:"digest"`
	ClassCounts string  `db:"class_counts_json"`
}

// GenConfig returns the generation parameters the run was recorded with.
func (r Run) GenConfig() world.GenConfig {
	return world.GenConfig{
		Seed:   uint32(r.Seed),
		Radius: uint32(r.Radius),
		Noise: world.NoiseConfig{
			Basis:       world.Basis(r.Basis),
			Octaves:     r.Octaves,
			Lacunarity:  r.Lacunarity,
			Persistence: r.Persistence,
		},
	}
}

// Created returns CreatedAt as a time.
func (r Run) Created() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// Counts decodes the per-class tile counts, keyed by class name.
func (r Run) Counts() (map[string]int, error) {
	counts := make(map[string]int)
	if err := json.Unmarshal([]byte(r.ClassCounts), &counts); err != nil {
		return nil, fmt.Errorf("decode class counts for run %s: %w", r.ID, err)
	}
	return counts, nil
}

// NewRun summarizes a generated world.
func NewRun(cfg world.GenConfig, w *world.World, now time.Time) Run {
	counts := make(map[string]int)
	for class, n := range w.ClassCounts() {
		counts[class.String()] = n
	}
	countsJSON, _ := json.Marshal(counts)

	return Run{
		ID:          uuid.NewString(),
		CreatedAt:   now.Unix(),
		Seed:        int64(cfg.Seed),
		Radius:      int64(cfg.Radius),
		Basis:       string(cfg.Noise.Basis),
		Octaves:     cfg.Noise.Octaves,
		Lacunarity:  cfg.Noise.Lacunarity,
		Persistence: cfg.Noise.Persistence,
		Tiles:       w.Len(),
		Digest:      w.Digest(),
		ClassCounts: string(countsJSON),
	}
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		radius INTEGER NOT NULL,
		basis TEXT NOT NULL,
		octaves INTEGER NOT NULL,
		lacunarity REAL NOT NULL,
		persistence REAL NOT NULL,
		tiles INTEGER NOT NULL,
		digest TEXT NOT NULL,
		class_counts_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_params ON runs(seed, radius, basis, octaves, lacunarity, persistence);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordRun appends a run and remembers it as the most recent.
func (db *DB) RecordRun(r Run) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, created_at, seed, radius, basis, octaves, lacunarity, persistence, tiles, digest, class_counts_json)
		VALUES (:id, :created_at, :seed, :radius, :basis, :octaves, :lacunarity, :persistence, :tiles, :digest, :class_counts_json)`, r)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO ledger_meta (key, value) VALUES (?, ?)",
		"last_run_id", r.ID,
	); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run recorded", "id", r.ID, "seed", r.Seed, "radius", r.Radius, "digest", r.Digest)
	return nil
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM ledger_meta WHERE key = ?", key)
	return value, err
}

// GetRun returns the run with the given ID.
func (db *DB) GetRun(id string) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("run %s: %w", id, ErrNoRun)
	}
	return r, err
}

// LastRun returns the most recently recorded run of any parameters.
func (db *DB) LastRun() (Run, error) {
	id, err := db.GetMeta("last_run_id")
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRun
	}
	if err != nil {
		return Run{}, err
	}
	return db.GetRun(id)
}

// LatestRun returns the newest run generated with exactly the parameters of cfg.
func (db *DB) LatestRun(cfg world.GenConfig) (Run, error) {
	var r Run
	err := db.conn.Get(&r, `SELECT * FROM runs
		WHERE seed = ? AND radius = ? AND basis = ? AND octaves = ?
			AND lacunarity = ? AND persistence = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		int64(cfg.Seed), int64(cfg.Radius), string(cfg.Noise.Basis), cfg.Noise.Octaves,
		cfg.Noise.Lacunarity, cfg.Noise.Persistence,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("seed %d radius %d: %w", cfg.Seed, cfg.Radius, ErrNoRun)
	}
	return r, err
}

// RecentRuns returns the most recent N runs.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// Verify compares w against the latest run recorded for cfg.
// It returns the matched run, ErrNoRun, or ErrDigestMismatch.
func (db *DB) Verify(cfg world.GenConfig, w *world.World) (Run, error) {
	prev, err := db.LatestRun(cfg)
	if err != nil {
		return prev, err
	}
	if got := w.Digest(); got != prev.Digest {
		return prev, fmt.Errorf("run %s: recorded %s, regenerated %s: %w", prev.ID, prev.Digest, got, ErrDigestMismatch)
	}
	return prev, nil
}
