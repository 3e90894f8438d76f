// Package sqlite stores computed series. The runs.jsonl file in the data
// directory is the source of truth; an SQLite database rebuilt from it on
// every Attach serves the queries.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/collatz/internal/analysis"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// dbFile is the SQLite database created inside the data directory.
const dbFile = "collatz.db"

// timeFormat is fixed width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Backend errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrRunNotFound     = errors.New("run not found")
)

// Run describes a saved series without its points.
type Run struct {
	ID         string          `json:"run_id"`
	Kind       analysis.Kind   `json:"kind"`
	Variant    collatz.Variant `json:"variant"`
	Max        uint64          `json:"max"`
	PointCount int             `json:"point_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Backend is a series store bound to one data directory.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
	log      *slog.Logger
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(log *slog.Logger) *Backend {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Backend{log: log}
}

// Attach creates dataDir if needed, rebuilds the database from runs.jsonl
// and makes the backend ready for use.
func (b *Backend) Attach(dataDir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return ErrAlreadyAttached
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	jsonlPath := filepath.Join(dataDir, runsJSONL)
	if err := ensureJSONL(jsonlPath); err != nil {
		return err
	}

	// The database is a disposable index; start from a fresh file.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	records, err := readJSONL(jsonlPath)
	if err != nil {
		db.Close()
		return err
	}
	loaded, err := loadRuns(db, records)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	b.log.Debug("attached store", slog.String("data_dir", dataDir), slog.Int("runs", loaded))
	return nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// SaveSeries stores s and returns the new run ID.
func (b *Backend) SaveSeries(s *analysis.Series) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", ErrDetached
	}

	rec := runRecord{
		RunID:     generateUUID(),
		Kind:      string(s.Kind),
		Variant:   s.Variant.String(),
		Max:       s.Max,
		CreatedAt: time.Now().UTC().Format(timeFormat),
		Points:    s.Points,
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()
	if err := insertRun(tx, rec); err != nil {
		return "", err
	}

	// Persist before commit so a failed write leaves both sides unchanged.
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding run: %w", err)
	}
	if err := b.rewriteJSONL(func(records []json.RawMessage) []json.RawMessage {
		return append(records, raw)
	}); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	b.log.Debug("saved run",
		slog.String("run_id", rec.RunID),
		slog.String("kind", rec.Kind),
		slog.String("variant", rec.Variant),
		slog.Int("points", len(rec.Points)))
	return rec.RunID, nil
}

// GetRun returns the description of a saved run.
func (b *Backend) GetRun(id string) (Run, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return Run{}, ErrDetached
	}
	row := b.db.QueryRow(
		`SELECT run_id, kind, variant, max_value, point_count, created_at FROM runs WHERE run_id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// GetSeries returns the full series saved under id.
func (b *Backend) GetSeries(id string) (*analysis.Series, error) {
	run, err := b.GetRun(id)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, ErrDetached
	}

	rows, err := b.db.Query(`SELECT x, y FROM points WHERE run_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]analysis.Point, 0, run.PointCount)
	for rows.Next() {
		var p analysis.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &analysis.Series{Kind: run.Kind, Variant: run.Variant, Max: run.Max, Points: points}, nil
}

// ListRuns returns every saved run, oldest first.
func (b *Backend) ListRuns() ([]Run, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, ErrDetached
	}
	rows, err := b.db.Query(
		`SELECT run_id, kind, variant, max_value, point_count, created_at FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a saved run and its points.
func (b *Backend) DeleteRun(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM points WHERE run_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	if err := b.rewriteJSONL(func(records []json.RawMessage) []json.RawMessage {
		kept := records[:0]
		for _, raw := range records {
			var rec struct {
				RunID string `json:"run_id"`
			}
			if json.Unmarshal(raw, &rec) == nil && rec.RunID == id {
				continue
			}
			kept = append(kept, raw)
		}
		return kept
	}); err != nil {
		return err
	}
	return tx.Commit()
}

// rewriteJSONL replaces runs.jsonl with edit applied to its records.
// The caller must hold b.mu write lock.
func (b *Backend) rewriteJSONL(edit func([]json.RawMessage) []json.RawMessage) error {
	path := filepath.Join(b.dataDir, runsJSONL)
	records, err := readJSONL(path)
	if err != nil {
		return err
	}
	return writeJSONL(path, edit(records))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run           Run
		kind, variant string
		maxValue      int64
		createdAt     string
	)
	if err := row.Scan(&run.ID, &kind, &variant, &maxValue, &run.PointCount, &createdAt); err != nil {
		return Run{}, err
	}
	v, err := collatz.ParseVariant(variant)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: created_at: %w", run.ID, err)
	}
	run.Kind = analysis.Kind(kind)
	run.Variant = v
	run.Max = uint64(maxValue)
	run.CreatedAt = ts
	return run, nil
}

// generateUUID returns a time-ordered run ID.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
