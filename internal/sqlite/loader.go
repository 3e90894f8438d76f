package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/collatz/internal/analysis"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// runRecord is the JSONL form of a saved run.
type runRecord struct {
	RunID     string           `json:"run_id"`
	Kind      string           `json:"kind"`
	Variant   string           `json:"variant"`
	Max       uint64           `json:"max"`
	CreatedAt string           `json:"created_at"`
	Points    []analysis.Point `json:"points"`
}

// loadRuns inserts every run from records into the database. Loading is
// transactional: either all rows land or none do. Records that fail to
// decode, fail validation or violate a constraint are skipped; unknown
// fields are ignored.
func loadRuns(db *sql.DB, records []json.RawMessage) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, raw := range records {
		var rec runRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if err := normalizeRecord(&rec); err != nil {
			continue
		}
		if err := insertRun(tx, rec); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// normalizeRecord checks that rec reads back as a Run and rewrites its
// variant and kind in canonical form.
func normalizeRecord(rec *runRecord) error {
	if rec.RunID == "" {
		return errors.New("missing run_id")
	}
	v, err := collatz.ParseVariant(rec.Variant)
	if err != nil {
		return err
	}
	k, err := analysis.ParseKind(rec.Kind)
	if err != nil {
		return err
	}
	if _, err := time.Parse(timeFormat, rec.CreatedAt); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	rec.Variant = v.String()
	rec.Kind = string(k)
	return nil
}

// insertRun writes one run and its points inside tx. A savepoint keeps a
// failed run from leaving partial rows behind.
func insertRun(tx *sql.Tx, rec runRecord) (err error) {
	if _, err := tx.Exec("SAVEPOINT run"); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_, _ = tx.Exec("ROLLBACK TO run")
		}
		_, _ = tx.Exec("RELEASE run")
	}()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, kind, variant, max_value, point_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Kind, rec.Variant, int64(rec.Max), len(rec.Points), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", rec.RunID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO points (run_id, ordinal, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing point insert: %w", err)
	}
	defer stmt.Close()
	for i, p := range rec.Points {
		if _, err = stmt.Exec(rec.RunID, i, p.X, p.Y); err != nil {
			return fmt.Errorf("inserting point %d of %s: %w", i, rec.RunID, err)
		}
	}
	return nil
}
