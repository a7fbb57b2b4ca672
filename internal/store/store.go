// Package store persists the launch dataset in SQLite so the dashboard can be
// served from an imported snapshot instead of the CSV.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"launchdash/internal/launch"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir (e.g. .launchdash).
const DefaultDBPath = ".launchdash/launches.db"

// ErrNoImport is returned by LastImport when nothing was imported yet.
var ErrNoImport = errors.New("no dataset imported")

// Import describes one ReplaceLaunches call.
type Import struct {
	Source     string    `db:"source"`
	Records    int       `db:"records"`
	ImportedAt time.Time `db:"-"`
}

// Store is the SQLite-backed launch repository.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates a SQLite DB at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sqlx.Connect("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying migration: %w", err)
	}
	return &Store{db: db}, nil
}

// Close terminates the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

const insertLaunch = `INSERT INTO launches
	(flight_number, launch_site, payload_mass_kg, class, booster_version, booster_category)
	VALUES (:flight_number, :launch_site, :payload_mass_kg, :class, :booster_version, :booster_category)`

// ReplaceLaunches swaps the stored dataset for t in one transaction and
// records the import.
func (s *Store) ReplaceLaunches(t *launch.Table, source string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(`DELETE FROM launches`); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}
	stmt, err := tx.PrepareNamed(insertLaunch)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range t.Records() {
		if _, err := stmt.Exec(r); err != nil {
			return fmt.Errorf("insert flight %d: %w", r.FlightNumber, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO imports (source, records, imported_at) VALUES (?, ?, ?)`,
		source, t.Len(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// LoadTable reads the stored dataset in import order.
func (s *Store) LoadTable() (*launch.Table, error) {
	var records []launch.Record
	err := s.db.Select(&records, `SELECT flight_number, launch_site, payload_mass_kg, class,
		booster_version, booster_category FROM launches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select launches: %w", err)
	}
	return launch.NewTable(records), nil
}

// CountLaunches returns the number of stored launches.
func (s *Store) CountLaunches() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM launches`); err != nil {
		return 0, fmt.Errorf("count launches: %w", err)
	}
	return n, nil
}

// LastImport returns the most recent import.
func (s *Store) LastImport() (Import, error) {
	var row struct {
		Source     string `db:"source"`
		Records    int    `db:"records"`
		ImportedAt string `db:"imported_at"`
	}
	err := s.db.Get(&row, `SELECT source, records, imported_at FROM imports ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, ErrNoImport
	}
	if err != nil {
		return Import{}, fmt.Errorf("last import: %w", err)
	}
	at, err := time.Parse(time.RFC3339, row.ImportedAt)
	if err != nil {
		return Import{}, fmt.Errorf("parse import time: %w", err)
	}
	return Import{Source: row.Source, Records: row.Records, ImportedAt: at}, nil
}
