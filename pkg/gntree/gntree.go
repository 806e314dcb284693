// Package gntree exposes the read-only query surface over a lineage
// tree index built by the lifecycle components.
//
// All tree questions are answered from the materialized lineage path
// stored with every node: ancestor tests and descendant enumeration
// are substring scans over that path, not recursive parent walks.
package gntree

import (
	"context"
)

// Taxonomy answers tree queries against a populated store. Lookups for
// unknown ids or names return taxa.ErrNotFound; predicate and set
// queries treat unknown ids as empty results, never as failures, so
// batch callers stay robust.
//
// Implementations are safe for concurrent readers.
type Taxonomy interface {
	// NameToID translates a scientific name into its taxon id. When an
	// exact match misses, the name is parsed and retried with its
	// simple canonical form, so authorship-bearing inputs resolve.
	NameToID(ctx context.Context, name string) (int, error)

	// IDToName translates a taxon id into its scientific name.
	IDToName(ctx context.Context, id int) (string, error)

	// IDToRank returns the rank label of a taxon.
	IDToRank(ctx context.Context, id int) (string, error)

	// Parent returns the stored parent id of a taxon.
	Parent(ctx context.Context, id int) (int, error)

	// Lineage reconstructs the root-to-node id path by live parent
	// traversal. The walk terminates at the root id or at the first
	// unresolved parent. The result agrees with the stored lineage
	// string used by the other operations.
	Lineage(ctx context.Context, id int) ([]int, error)

	// IsAncestor reports whether anc is one of the path elements of
	// id's lineage. Every node is an ancestor of itself. Unknown ids
	// yield false, not an error.
	IsAncestor(ctx context.Context, anc, id int) (bool, error)

	// Children returns direct children of a taxon, or, with deep set,
	// the full descendant set via a lineage pattern scan. The taxon
	// itself is never included.
	Children(ctx context.Context, id int, deep bool) ([]int, error)

	// Siblings returns the other children of the taxon's parent.
	// The root has no siblings.
	Siblings(ctx context.Context, id int) ([]int, error)

	// Relatives returns the neighborhood of a taxon within degree
	// steps: it climbs degree levels starting at the parent, then
	// descends level by level 2*degree levels from that ancestor,
	// accumulating every level. The result is a flattened multiset;
	// duplicates across levels are preserved and the taxon itself may
	// appear. This is a fuzzy neighborhood, not an exact
	// degree-of-relation computation.
	Relatives(ctx context.Context, id, degree int) ([]int, error)

	// NearestCommonAncestor scans both lineages leaf-to-root, a's path
	// in the outer loop and b's in the inner one, and returns the
	// first shared id together with the combined distance i+j. The
	// nested scan order is part of the contract: when the lineages
	// share several ids out of monotonic order, the first hit of this
	// iteration wins, which is not always the deepest common node.
	NearestCommonAncestor(ctx context.Context, a, b int) (dist, id int, err error)
}
