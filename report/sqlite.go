package report

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	"github.com/hupe1980/episcan"
)

const batchSize = 1000

const schema = `
CREATE TABLE IF NOT EXISTS pairs (
	marker_a  TEXT NOT NULL,
	marker_b  TEXT NOT NULL,
	statistic REAL NOT NULL,
	p_value   REAL NOT NULL,
	PRIMARY KEY (marker_a, marker_b)
);
CREATE TABLE IF NOT EXISTS scans (
	markers      INTEGER NOT NULL,
	pairs        INTEGER NOT NULL,
	emitted      INTEGER NOT NULL,
	mask_version INTEGER NOT NULL,
	duration_ms  INTEGER NOT NULL
);
`

// PairRow is one row of the pairs table.
type PairRow struct {
	MarkerA   string  `db:"marker_a"`
	MarkerB   string  `db:"marker_b"`
	Statistic float64 `db:"statistic"`
	PValue    float64 `db:"p_value"`
}

// SQLiteSink inserts results into a SQLite database in batched transactions.
type SQLiteSink struct {
	DB      *sqlx.DB
	tx      *sqlx.Tx
	pending int
}

// OpenSQLite opens or creates the database at path and its tables.
func OpenSQLite(path string) (*SQLiteSink, error) {
	// URI filenames have to begin with 'file:'.
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	db, err := sqlx.Connect(sqliteDriver, path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, pfx.Err(fmt.Errorf("unable to create schema: %w", err))
	}
	return &SQLiteSink{DB: db}, nil
}

func (s *SQLiteSink) Write(r episcan.PairResult) error {
	if s.tx == nil {
		tx, err := s.DB.Beginx()
		if err != nil {
			return pfx.Err(err)
		}
		s.tx = tx
	}
	_, err := s.tx.NamedExec(
		`INSERT OR REPLACE INTO pairs (marker_a, marker_b, statistic, p_value)
		 VALUES (:marker_a, :marker_b, :statistic, :p_value)`,
		PairRow{MarkerA: r.MarkerA, MarkerB: r.MarkerB, Statistic: r.Statistic, PValue: r.PValue},
	)
	if err != nil {
		return pfx.Err(err)
	}
	s.pending++
	if s.pending >= batchSize {
		return s.commit()
	}
	return nil
}

func (s *SQLiteSink) commit() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx, s.pending = nil, 0
	if err != nil {
		return pfx.Err(err)
	}
	return nil
}

// WriteSummary records a completed scan.
func (s *SQLiteSink) WriteSummary(sum episcan.ScanSummary) error {
	if err := s.commit(); err != nil {
		return err
	}
	_, err := s.DB.Exec(
		`INSERT INTO scans (markers, pairs, emitted, mask_version, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		sum.Markers, sum.Pairs, sum.Emitted, int64(sum.Version), sum.Duration.Milliseconds(),
	)
	if err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Pairs returns stored rows with p_value at most maxP, most significant first.
func (s *SQLiteSink) Pairs(maxP float64) ([]PairRow, error) {
	if err := s.commit(); err != nil {
		return nil, err
	}
	var rows []PairRow
	err := s.DB.Select(&rows,
		`SELECT marker_a, marker_b, statistic, p_value FROM pairs WHERE p_value <= ? ORDER BY p_value, marker_a, marker_b`, maxP)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// Close commits pending rows and closes the database.
func (s *SQLiteSink) Close() error {
	err := s.commit()
	if cerr := s.DB.Close(); err == nil && cerr != nil {
		err = pfx.Err(cerr)
	}
	return err
}
