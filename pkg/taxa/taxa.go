// Package taxa provides the domain model for taxonomic tree nodes
// and the materialized lineage-path encoding.
//
// This package is pure: no I/O, no storage dependencies. Engine-specific
// operators in internal/ implement persistence for these types.
package taxa

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups when an id or name is absent
// from the store. Callers must check for it; absence is not a failure.
var ErrNotFound = errors.New("taxon not found")

// Record is one ingestion tuple produced by a data source reader.
// Records may arrive in arbitrary order; parent ids can reference
// records that appear later in the stream.
type Record struct {
	// ID is the taxon identifier, unique within a source.
	ID int

	// Name is the scientific name. Not guaranteed unique across ranks,
	// but used as a secondary lookup key.
	Name string

	// ParentID references another record's ID. The root references
	// itself.
	ParentID int

	// Rank is the taxonomic rank label (e.g. "species", "genus").
	// It is carried verbatim and takes no part in tree logic.
	Rank string
}

// Node is a stored taxonomy row, a Record plus its materialized
// lineage path.
type Node struct {
	ID       int
	Name     string
	ParentID int
	Rank     string

	// Lineage is the delimiter-wrapped path of ids from the root to
	// this node inclusive, e.g. "!!1!!131567!!9606!!".
	Lineage string
}

// LineageUpdate carries a computed lineage string for one node during
// the second phase of a bulk build.
type LineageUpdate struct {
	ID      int
	Lineage string
}

// Import records the provenance of one bulk build. Exactly one row is
// written per build; the latest row is authoritative for the delimiter
// and root id the store was built with.
type Import struct {
	// ID is a random UUID assigned to the build.
	ID string

	// Source is the URL or local path the records came from.
	Source string

	// Records is the number of nodes inserted.
	Records int

	// RootID is the id the lineage walk terminated at.
	RootID int

	// Delimiter is the lineage path separator the store was built with.
	// A store built with one delimiter must not be queried with another.
	Delimiter string

	ImportedAt time.Time
}
