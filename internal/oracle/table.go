package oracle

// #region imports
import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkhalilov/prospector/go-controller/internal/param"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS measurements (
	sample_key    TEXT PRIMARY KEY,
	measurement   REAL NOT NULL,
	fidelity      REAL,
	sample_json   TEXT NOT NULL
);
`

// #endregion

// #region table-struct

// Table is a SQLite-backed lookup-table oracle. Rows are keyed by the
// canonical assignment key, so a sample's fidelity parameter is part of
// its identity: the same composition at s=0.1 and s=1.0 are distinct rows.
type Table struct {
	db *sql.DB
}

// #endregion

// #region constructor

// OpenTable opens (or creates) a lookup-table database.
func OpenTable(dbPath string) (*Table, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open oracle db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Table{db: db}, nil
}

// Close closes the underlying database connection.
func (t *Table) Close() error {
	return t.db.Close()
}

// #endregion

// #region measure

// Measure looks up the measurement for sample. A missing row yields
// *LookupError.
func (t *Table) Measure(sample param.Assignment) (float64, error) {
	key := sample.Key()
	var m float64
	err := t.db.QueryRow(
		`SELECT measurement FROM measurements WHERE sample_key = ?`, key,
	).Scan(&m)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &LookupError{Key: key}
	}
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", key, err)
	}
	return m, nil
}

// #endregion

// #region insert

// Insert adds one measurement row. Re-inserting the same sample replaces
// the previous row.
func (t *Table) Insert(sample param.Assignment, measurement float64) error {
	sampleJSON, err := sample.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}

	var fidelityPtr interface{}
	if s, ok := sample.Fidelity(); ok {
		fidelityPtr = s
	}

	_, err = t.db.Exec(
		`INSERT INTO measurements (sample_key, measurement, fidelity, sample_json)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(sample_key) DO UPDATE SET
		   measurement = excluded.measurement,
		   fidelity    = excluded.fidelity,
		   sample_json = excluded.sample_json`,
		sample.Key(), measurement, fidelityPtr, string(sampleJSON),
	)
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	return nil
}

// #endregion

// #region count

// Count returns the number of rows in the lookup table.
func (t *Table) Count() (int, error) {
	var n int
	if err := t.db.QueryRow(`SELECT COUNT(*) FROM measurements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count measurements: %w", err)
	}
	return n, nil
}

// Best returns the minimum or maximum measurement stored at the given
// fidelity, for seeding a convergence target from a fully known table.
func (t *Table) Best(fidelity float64, maximize bool) (float64, error) {
	agg := "MIN"
	if maximize {
		agg = "MAX"
	}
	var m sql.NullFloat64
	err := t.db.QueryRow(
		`SELECT `+agg+`(measurement) FROM measurements WHERE fidelity = ?`, fidelity,
	).Scan(&m)
	if err != nil {
		return 0, fmt.Errorf("best measurement: %w", err)
	}
	if !m.Valid {
		return 0, fmt.Errorf("no measurements at fidelity %g", fidelity)
	}
	return m.Float64, nil
}

// #endregion
