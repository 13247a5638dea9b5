package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/world"
)

// Store is an embedded harvest ledger and terrain cache for single-process
// deployments without postgres.
type Store struct {
	db *sql.DB
}

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

func (s *Store) Close() error { return s.db.Close() }

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS harvest_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			build_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			unit_id INTEGER NOT NULL,
			resource_id INTEGER NOT NULL,
			resource_type TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL DEFAULT 0,
			yield INTEGER NOT NULL DEFAULT 0,
			occurred_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_harvest_events_build_tick ON harvest_events(build_id, tick);`,
		`CREATE TABLE IF NOT EXISTS terrain_maps (
			seed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			layout TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (seed, size)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Append(ctx context.Context, events []ports.HarvestEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO harvest_events
		(event_id, build_id, tick, kind, unit_id, resource_id, resource_type, amount, yield, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, e.EventID, e.BuildID, e.Tick, e.Kind, e.UnitID, e.ResourceID,
			e.ResourceType, e.Amount, e.Yield, e.OccurredAt.UnixNano()); err != nil {
			return fmt.Errorf("insert harvest event %s: %w", e.EventID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListByBuild(ctx context.Context, buildID string, limit int) ([]ports.HarvestEvent, error) {
	q := `SELECT event_id, build_id, tick, kind, unit_id, resource_id, resource_type, amount, yield, occurred_at
		FROM harvest_events WHERE build_id = ? ORDER BY tick DESC, id DESC`
	args := []any{buildID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ports.HarvestEvent{}
	for rows.Next() {
		var (
			e  ports.HarvestEvent
			at int64
		)
		if err := rows.Scan(&e.EventID, &e.BuildID, &e.Tick, &e.Kind, &e.UnitID, &e.ResourceID,
			&e.ResourceType, &e.Amount, &e.Yield, &at); err != nil {
			return nil, err
		}
		e.OccurredAt = time.Unix(0, at).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}

// TerrainRepo exposes the terrain cache half of the store.
func (s *Store) TerrainRepo() TerrainRepo { return TerrainRepo{db: s.db} }

type TerrainRepo struct {
	db *sql.DB
}

func (r TerrainRepo) Get(ctx context.Context, seed int64, size int) (world.TypeMap, error) {
	var layout string
	err := r.db.QueryRowContext(ctx, `SELECT layout FROM terrain_maps WHERE seed = ? AND size = ?`, seed, size).Scan(&layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return world.ParseLayout(strings.Split(layout, "\n")...), nil
}

func (r TerrainRepo) Save(ctx context.Context, seed int64, size int, types world.TypeMap) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO terrain_maps(seed, size, layout, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(seed, size) DO UPDATE SET layout = excluded.layout, updated_at = excluded.updated_at`,
		seed, size, strings.Join(world.FormatLayout(types), "\n"), time.Now().Unix())
	return err
}
