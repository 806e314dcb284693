// Package lifecycle defines the contracts for the write phase of a
// GNtree store: schema creation, dataset acquisition and bulk build.
//
// The lifecycle is strictly two-phase. Write-phase components run to
// completion with no concurrent readers, because intermediate state
// (lineage not yet populated) is not query-consistent. After Build
// finishes the store is read-only and served through gntree.Taxonomy.
package lifecycle

import (
	"context"

	"github.com/gnames/gntree/pkg/taxa"
)

// SchemaManager creates the storage schema. Creation is destructive:
// any pre-existing taxonomy relation is dropped first.
type SchemaManager interface {
	// Create drops and recreates the taxonomy and imports relations.
	Create(ctx context.Context) error
}

// Fetcher acquires the source dataset and converts it to ingestion
// records. Implementations accept a URL or a local archive path.
type Fetcher interface {
	// Fetch streams every record of the dataset to fn. Records arrive
	// in source order; parent ids may reference records that have not
	// been seen yet. Iteration stops at the first error fn returns.
	Fetch(ctx context.Context, src string, fn func(rec taxa.Record) error) error
}

// Populator performs the bulk build: insert all records with empty
// lineage, compute every node's lineage by walking parent links, then
// persist lineages, build indexes and record provenance.
type Populator interface {
	// Build runs the full write phase against the configured source.
	Build(ctx context.Context) error
}
