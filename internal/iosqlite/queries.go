package iosqlite

import (
	"context"
	"database/sql"

	"github.com/gnames/gntree/pkg/taxa"
)

// Node returns the stored row for an id.
func (s *sqliteOperator) Node(
	ctx context.Context,
	id int,
) (taxa.Node, error) {
	var n taxa.Node
	if s.db == nil {
		return n, NotConnectedError()
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT taxa_id, taxa_name, parent_taxa, rank, lineage
		 FROM taxonomy WHERE taxa_id = ?`, id)
	err := row.Scan(&n.ID, &n.Name, &n.ParentID, &n.Rank, &n.Lineage)
	if err == sql.ErrNoRows {
		return taxa.Node{}, taxa.ErrNotFound
	}
	if err != nil {
		return taxa.Node{}, QueryError(err)
	}
	return n, nil
}

// NodeByName returns the stored row for an exact scientific name.
// Names are not unique across ranks; the smallest id wins.
func (s *sqliteOperator) NodeByName(
	ctx context.Context,
	name string,
) (taxa.Node, error) {
	var n taxa.Node
	if s.db == nil {
		return n, NotConnectedError()
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT taxa_id, taxa_name, parent_taxa, rank, lineage
		 FROM taxonomy WHERE taxa_name = ?
		 ORDER BY taxa_id LIMIT 1`, name)
	err := row.Scan(&n.ID, &n.Name, &n.ParentID, &n.Rank, &n.Lineage)
	if err == sql.ErrNoRows {
		return taxa.Node{}, taxa.ErrNotFound
	}
	if err != nil {
		return taxa.Node{}, QueryError(err)
	}
	return n, nil
}

// ChildIDs returns direct children. The root is stored self-parented,
// so the node itself is excluded explicitly.
func (s *sqliteOperator) ChildIDs(
	ctx context.Context,
	id int,
) ([]int, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT taxa_id FROM taxonomy
		 WHERE parent_taxa = ? AND taxa_id != ?
		 ORDER BY taxa_id`, id, id)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// DescendantIDs returns every node whose lineage contains the
// delimiter-wrapped pattern, excluding the node itself. A single
// substring scan replaces a recursive tree walk.
func (s *sqliteOperator) DescendantIDs(
	ctx context.Context,
	pattern string,
	id int,
) ([]int, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT taxa_id FROM taxonomy
		 WHERE lineage LIKE ? AND taxa_id != ?
		 ORDER BY taxa_id`, "%"+pattern+"%", id)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// EachNode streams every stored node to fn.
func (s *sqliteOperator) EachNode(
	ctx context.Context,
	fn func(n taxa.Node) error,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	rows, err := s.db.QueryContext(ctx,
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
func (s *sqliteOperator) CountNodes(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, NotConnectedError()
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM taxonomy").Scan(&count)
	if err != nil {
		return 0, QueryError(err)
	}
	return count, nil
}

func scanIDs(rows *sql.Rows) ([]int, error) {
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
