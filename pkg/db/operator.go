// Package db defines the storage contract for the lineage tree index.
//
// The contract is engine-neutral: any relational or embedded store that
// can persist the taxonomy relation and answer the pattern queries
// below can back the index. Two implementations ship with GNtree:
// internal/iosqlite (embedded, the default) and internal/iopg
// (PostgreSQL via pgxpool).
package db

import (
	"context"

	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/taxa"
)

// Operator is the storage contract. Write methods are only used during
// the bulk-build phase; once an import finishes the store is treated as
// read-only and the read methods are safe for concurrent callers.
//
// Lookups that miss return taxa.ErrNotFound, never a nil-dereference or
// an engine-specific sentinel.
type Operator interface {
	// Connect opens the store. It must be paired with Close on all
	// exit paths, including failed builds.
	Connect(ctx context.Context, cfg *config.DatabaseConfig) error

	// Close releases the store handle. Safe to call when not connected.
	Close() error

	// InitSchema drops any existing taxonomy relation and recreates it
	// together with the imports metadata relation. Destructive.
	InitSchema(ctx context.Context) error

	// CreateIndexes builds the secondary indexes on taxa_name,
	// parent_taxa and lineage. Runs after bulk load; idempotent.
	CreateIndexes(ctx context.Context) error

	// InsertRecords bulk-inserts one batch of records with an empty
	// lineage field.
	InsertRecords(ctx context.Context, recs []taxa.Record) error

	// UpdateLineages persists one batch of computed lineage strings.
	UpdateLineages(ctx context.Context, ups []taxa.LineageUpdate) error

	// SaveImport records build provenance (source, counts, delimiter).
	SaveImport(ctx context.Context, imp taxa.Import) error

	// LastImport returns the most recent import row, or
	// taxa.ErrNotFound for stores that predate the imports relation.
	LastImport(ctx context.Context) (taxa.Import, error)

	// Node returns the stored row for an id.
	Node(ctx context.Context, id int) (taxa.Node, error)

	// NodeByName returns the stored row for an exact scientific name.
	// When several ranks share a name the row with the smallest id
	// wins, keeping the lookup deterministic.
	NodeByName(ctx context.Context, name string) (taxa.Node, error)

	// ChildIDs returns ids of nodes whose parent_taxa equals id,
	// excluding id itself (the root is stored self-parented).
	ChildIDs(ctx context.Context, id int) ([]int, error)

	// DescendantIDs returns ids of nodes whose lineage contains the
	// delimiter-wrapped pattern, excluding the given id itself. This is
	// the materialized-path payoff: full descendant enumeration without
	// a recursive walk.
	DescendantIDs(ctx context.Context, pattern string, id int) ([]int, error)

	// EachNode streams every stored node to fn in unspecified order.
	// Iteration stops at the first error fn returns.
	EachNode(ctx context.Context, fn func(n taxa.Node) error) error

	// CountNodes returns the number of stored nodes.
	CountNodes(ctx context.Context) (int, error)
}
