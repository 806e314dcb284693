// Package iosqlite implements the db.Operator contract with an
// embedded SQLite store using the pure Go modernc.org/sqlite driver.
// This is an impure I/O package that implements contracts defined
// in pkg/.
package iosqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/taxa"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// sqliteOperator implements db.Operator backed by a single SQLite file
// (or an in-memory store for tests).
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite database operator (without connecting).
func New() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite database file. SQLite allows a single
// writer, so the pool is pinned to one connection; concurrent readers
// go through the same handle, which the driver serializes.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	handle, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return ConnectionError(cfg.Path, err)
	}
	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return ConnectionError(cfg.Path, err)
	}

	s.db = handle
	s.path = cfg.Path
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// InitSchema drops any existing relations and recreates them. Indexes
// are created separately after bulk load (see CreateIndexes).
func (s *sqliteOperator) InitSchema(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	stmts := []string{
		"DROP TABLE IF EXISTS taxonomy",
		`CREATE TABLE taxonomy (
			taxa_id INTEGER PRIMARY KEY,
			taxa_name VARCHAR(255),
			parent_taxa INTEGER,
			rank VARCHAR(50),
			lineage VARCHAR(255)
		)`,
		"DROP TABLE IF EXISTS imports",
		`CREATE TABLE imports (
			id VARCHAR(36) PRIMARY KEY,
			source TEXT,
			records INTEGER,
			root_id INTEGER,
			delimiter VARCHAR(10),
			imported_at TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return SchemaError(err)
		}
	}
	return nil
}

// CreateIndexes builds the secondary indexes used by name lookups,
// shallow child queries and lineage pattern scans. Index creation is
// deferred until after bulk load to keep inserts fast.
func (s *sqliteOperator) CreateIndexes(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	stmts := []string{
		"CREATE INDEX IF NOT EXISTS taxname ON taxonomy(taxa_name)",
		"CREATE INDEX IF NOT EXISTS parent_id ON taxonomy(parent_taxa)",
		"CREATE INDEX IF NOT EXISTS lineage_path ON taxonomy(lineage)",
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return IndexError(err)
		}
	}
	return nil
}

// InsertRecords bulk-inserts one batch of records inside a single
// transaction. The lineage field starts empty; it is filled by
// UpdateLineages after all rows exist.
func (s *sqliteOperator) InsertRecords(
	ctx context.Context,
	recs []taxa.Record,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO taxonomy VALUES (?, ?, ?, ?, '')")
	if err != nil {
		return InsertError(err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.Name, rec.ParentID, rec.Rank)
		if err != nil {
			return InsertError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertError(err)
	}
	return nil
}

// UpdateLineages persists one batch of computed lineage strings inside
// a single transaction.
func (s *sqliteOperator) UpdateLineages(
	ctx context.Context,
	ups []taxa.LineageUpdate,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"UPDATE taxonomy SET lineage = ? WHERE taxa_id = ?")
	if err != nil {
		return UpdateError(err)
	}
	defer stmt.Close()

	for _, up := range ups {
		if _, err = stmt.ExecContext(ctx, up.Lineage, up.ID); err != nil {
			return UpdateError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return UpdateError(err)
	}
	return nil
}

// SaveImport records build provenance.
func (s *sqliteOperator) SaveImport(
	ctx context.Context,
	imp taxa.Import,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO imports VALUES (?, ?, ?, ?, ?, ?)",
		imp.ID, imp.Source, imp.Records, imp.RootID,
		imp.Delimiter, imp.ImportedAt,
	)
	if err != nil {
		return InsertError(err)
	}
	return nil
}

// LastImport returns the most recent import row. Stores built before
// the imports relation existed report taxa.ErrNotFound, letting the
// query layer fall back to delimiter re-derivation.
func (s *sqliteOperator) LastImport(
	ctx context.Context,
) (taxa.Import, error) {
	var imp taxa.Import
	if s.db == nil {
		return imp, NotConnectedError()
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, records, root_id, delimiter, imported_at
		 FROM imports ORDER BY imported_at DESC LIMIT 1`)

	var importedAt time.Time
	err := row.Scan(&imp.ID, &imp.Source, &imp.Records, &imp.RootID,
		&imp.Delimiter, &importedAt)
	switch {
	case err == sql.ErrNoRows:
		return taxa.Import{}, taxa.ErrNotFound
	case err != nil && strings.Contains(err.Error(), "no such table"):
		return taxa.Import{}, taxa.ErrNotFound
	case err != nil:
		return taxa.Import{}, QueryError(err)
	}
	imp.ImportedAt = importedAt
	return imp, nil
}
