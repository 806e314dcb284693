// Package iopg implements the db.Operator contract for PostgreSQL
// using pgxpool. This is an impure I/O package that implements
// contracts defined in pkg/.
package iopg

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/taxa"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgOperator implements db.Operator using pgxpool for connection
// pooling.
type pgOperator struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL database operator (without connecting).
func New() db.Operator {
	return &pgOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (p *pgOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// InsertRecords bulk-inserts one batch of records using CopyFrom,
// the fastest path pgx offers for bulk loads.
func (p *pgOperator) InsertRecords(
	ctx context.Context,
	recs []taxa.Record,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	rows := make([][]any, len(recs))
	for i, rec := range recs {
		rows[i] = []any{rec.ID, rec.Name, rec.ParentID, rec.Rank, ""}
	}

	_, err := p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"taxonomy"},
		[]string{"taxa_id", "taxa_name", "parent_taxa", "rank", "lineage"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return InsertError(err)
	}
	return nil
}

// UpdateLineages persists one batch of computed lineage strings using
// a pgx batch to avoid a round trip per row.
func (p *pgOperator) UpdateLineages(
	ctx context.Context,
	ups []taxa.LineageUpdate,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	batch := &pgx.Batch{}
	for _, up := range ups {
		batch.Queue(
			"UPDATE taxonomy SET lineage = $1 WHERE taxa_id = $2",
			up.Lineage, up.ID,
		)
	}

	res := p.pool.SendBatch(ctx, batch)
	defer res.Close()

	for range ups {
		if _, err := res.Exec(); err != nil {
			return UpdateError(err)
		}
	}
	return nil
}

// SaveImport records build provenance.
func (p *pgOperator) SaveImport(
	ctx context.Context,
	imp taxa.Import,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO imports (id, source, records, root_id, delimiter, imported_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		imp.ID, imp.Source, imp.Records, imp.RootID,
		imp.Delimiter, imp.ImportedAt,
	)
	if err != nil {
		return InsertError(err)
	}
	return nil
}

// LastImport returns the most recent import row.
func (p *pgOperator) LastImport(
	ctx context.Context,
) (taxa.Import, error) {
	var imp taxa.Import
	if p.pool == nil {
		return imp, NotConnectedError()
	}

	row := p.pool.QueryRow(ctx,
		`SELECT id, source, records, root_id, delimiter, imported_at
		 FROM imports ORDER BY imported_at DESC LIMIT 1`)

	err := row.Scan(&imp.ID, &imp.Source, &imp.Records, &imp.RootID,
		&imp.Delimiter, &imp.ImportedAt)
	if err == pgx.ErrNoRows {
		return taxa.Import{}, taxa.ErrNotFound
	}
	// Stores built before the imports relation existed report the
	// missing table as a plain not-found, so the query layer can fall
	// back to delimiter re-derivation.
	if err != nil && strings.Contains(err.Error(), "does not exist") {
		return taxa.Import{}, taxa.ErrNotFound
	}
	if err != nil {
		return taxa.Import{}, QueryError(err)
	}
	return imp, nil
}

// Node returns the stored row for an id.
func (p *pgOperator) Node(
	ctx context.Context,
	id int,
) (taxa.Node, error) {
	var n taxa.Node
	if p.pool == nil {
		return n, NotConnectedError()
	}

	row := p.pool.QueryRow(ctx,
		`SELECT taxa_id, taxa_name, parent_taxa, rank, lineage
		 FROM taxonomy WHERE taxa_id = $1`, id)
	err := row.Scan(&n.ID, &n.Name, &n.ParentID, &n.Rank, &n.Lineage)
	if err == pgx.ErrNoRows {
		return taxa.Node{}, taxa.ErrNotFound
	}
	if err != nil {
		return taxa.Node{}, QueryError(err)
	}
	return n, nil
}

// NodeByName returns the stored row for an exact scientific name.
func (p *pgOperator) NodeByName(
	ctx context.Context,
	name string,
) (taxa.Node, error) {
	var n taxa.Node
	if p.pool == nil {
		return n, NotConnectedError()
	}

	row := p.pool.QueryRow(ctx,
		`SELECT taxa_id, taxa_name, parent_taxa, rank, lineage
		 FROM taxonomy WHERE taxa_name = $1
		 ORDER BY taxa_id LIMIT 1`, name)
	err := row.Scan(&n.ID, &n.Name, &n.ParentID, &n.Rank, &n.Lineage)
	if err == pgx.ErrNoRows {
		return taxa.Node{}, taxa.ErrNotFound
	}
	if err != nil {
		return taxa.Node{}, QueryError(err)
	}
	return n, nil
}

// ChildIDs returns direct children, excluding the self-parented root.
func (p *pgOperator) ChildIDs(
	ctx context.Context,
	id int,
) ([]int, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx,
		`SELECT taxa_id FROM taxonomy
		 WHERE parent_taxa = $1 AND taxa_id != $1
		 ORDER BY taxa_id`, id)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// DescendantIDs returns every node whose lineage contains the
// delimiter-wrapped pattern, excluding the node itself.
func (p *pgOperator) DescendantIDs(
	ctx context.Context,
	pattern string,
	id int,
) ([]int, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx,
		`SELECT taxa_id FROM taxonomy
		 WHERE lineage LIKE $1 AND taxa_id != $2
		 ORDER BY taxa_id`, "%"+pattern+"%", id)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// EachNode streams every stored node to fn.
func (p *pgOperator) EachNode(
	ctx context.Context,
	fn func(n taxa.Node) error,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	rows, err := p.pool.Query(ctx,
		`SELECT taxa_id, taxa_name, parent_taxa, rank, lineage
		 FROM taxonomy`)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var n taxa.Node
		err = rows.Scan(&n.ID, &n.Name, &n.ParentID, &n.Rank, &n.Lineage)
		if err != nil {
			return QueryError(err)
		}
		if err = fn(n); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountNodes returns the number of stored nodes.
func (p *pgOperator) CountNodes(ctx context.Context) (int, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}

	var count int
	err := p.pool.QueryRow(ctx,
		"SELECT count(*) FROM taxonomy").Scan(&count)
	if err != nil {
		return 0, QueryError(err)
	}
	return count, nil
}

func scanIDs(rows pgx.Rows) ([]int, error) {
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(err)
	}
	return ids, nil
}
