package ioquery

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gnames/gntree/pkg/taxa"
)

// NameToID translates a scientific name into its taxon id. An exact
// match is tried first; on a miss the input is parsed and retried with
// its simple canonical form, so "Homo sapiens Linnaeus, 1758" still
// resolves.
func (t *taxonomy) NameToID(
	ctx context.Context,
	name string,
) (int, error) {
	n, err := t.operator.NodeByName(ctx, name)
	if err == nil {
		return n.ID, nil
	}
	if !errors.Is(err, taxa.ErrNotFound) {
		return 0, err
	}

	canonical := t.canonical(name)
	if canonical == "" || canonical == name {
		return 0, taxa.ErrNotFound
	}
	n, err = t.operator.NodeByName(ctx, canonical)
	if err != nil {
		return 0, err
	}
	return n.ID, nil
}

// IDToName translates a taxon id into its scientific name.
func (t *taxonomy) IDToName(ctx context.Context, id int) (string, error) {
	n, err := t.node(ctx, id)
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// IDToRank returns the rank label of a taxon.
func (t *taxonomy) IDToRank(ctx context.Context, id int) (string, error) {
	n, err := t.node(ctx, id)
	if err != nil {
		return "", err
	}
	return n.Rank, nil
}

// Parent returns the stored parent id of a taxon.
func (t *taxonomy) Parent(ctx context.Context, id int) (int, error) {
	n, err := t.node(ctx, id)
	if err != nil {
		return 0, err
	}
	return n.ParentID, nil
}

// Lineage reconstructs the root-to-node path by live parent traversal.
// The walk stops at the root id or at the first parent that does not
// resolve to a stored node. The result agrees with the stored lineage
// string the pattern operations scan.
func (t *taxonomy) Lineage(ctx context.Context, id int) ([]int, error) {
	n, err := t.node(ctx, id)
	if err != nil {
		return nil, err
	}

	path := []int{n.ID}
	visited := map[int]bool{n.ID: true}

	cur := n
	for cur.ID != t.rootID {
		parentID := cur.ParentID
		if parentID == cur.ID || visited[parentID] {
			break
		}
		parent, err := t.node(ctx, parentID)
		if errors.Is(err, taxa.ErrNotFound) {
			// Unresolved parent acts as an effective root.
			break
		}
		if err != nil {
			return nil, err
		}
		visited[parentID] = true
		path = append(path, parentID)
		cur = parent
	}

	slices.Reverse(path)
	return path, nil
}

// IsAncestor reports whether anc appears among the path elements of
// id's stored lineage. Unknown ids yield false, never an error.
func (t *taxonomy) IsAncestor(
	ctx context.Context,
	anc, id int,
) (bool, error) {
	n, err := t.node(ctx, id)
	if errors.Is(err, taxa.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(n.Lineage, taxa.Wrap(anc, t.delimiter)), nil
}

// Children returns direct children, or with deep set the full
// descendant set via a single lineage pattern scan. The taxon itself
// is never included.
func (t *taxonomy) Children(
	ctx context.Context,
	id int,
	deep bool,
) ([]int, error) {
	if deep {
		return t.operator.DescendantIDs(ctx, taxa.Wrap(id, t.delimiter), id)
	}
	return t.operator.ChildIDs(ctx, id)
}

// Siblings returns the other children of the taxon's parent. The root
// and unknown ids yield an empty result.
func (t *taxonomy) Siblings(ctx context.Context, id int) ([]int, error) {
	n, err := t.node(ctx, id)
	if errors.Is(err, taxa.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n.ID == t.rootID {
		return nil, nil
	}

	ids, err := t.operator.ChildIDs(ctx, n.ParentID)
	if err != nil {
		return nil, err
	}

	res := make([]int, 0, len(ids))
	for _, sib := range ids {
		if sib != id {
			res = append(res, sib)
		}
	}
	return res, nil
}

// Relatives returns the neighborhood of a taxon within degree steps.
// It climbs degree levels starting at the parent, then descends level
// by level 2*degree levels from that ancestor, accumulating every
// level including the ancestor itself. Duplicates across levels are
// preserved; the result is a multiset, not a set.
func (t *taxonomy) Relatives(
	ctx context.Context,
	id, degree int,
) ([]int, error) {
	if degree < 1 {
		return nil, nil
	}
	if _, err := t.node(ctx, id); err != nil {
		if errors.Is(err, taxa.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	anc, err := t.climb(ctx, id, degree)
	if err != nil {
		return nil, err
	}

	res := []int{anc}
	level := []int{anc}
	for range 2 * degree {
		var next []int
		for _, cur := range level {
			children, err := t.operator.ChildIDs(ctx, cur)
			if err != nil {
				return nil, err
			}
			next = append(next, children...)
		}
		if len(next) == 0 {
			break
		}
		res = append(res, next...)
		level = next
	}
	return res, nil
}

// climb walks up the given number of levels starting at the node's
// parent, stopping early at the root or at an unresolved parent.
func (t *taxonomy) climb(
	ctx context.Context,
	id, levels int,
) (int, error) {
	cur := id
	for range levels {
		n, err := t.node(ctx, cur)
		if err != nil {
			return 0, err
		}
		parentID := n.ParentID
		if parentID == cur {
			break
		}
		if _, err = t.node(ctx, parentID); err != nil {
			if errors.Is(err, taxa.ErrNotFound) {
				break
			}
			return 0, err
		}
		cur = parentID
	}
	return cur, nil
}

// NearestCommonAncestor scans both lineages leaf-to-root, a's path in
// the outer loop and b's in the inner one, and returns the first
// shared id with the combined distance i+j.
//
// The nested scan order is deliberately kept as the contract: with
// lineages that share several ids out of monotonic order, the first
// hit of this iteration wins even when it is not the deepest common
// node. A depth-true LCA would silently change observable results.
func (t *taxonomy) NearestCommonAncestor(
	ctx context.Context,
	a, b int,
) (int, int, error) {
	pathA, err := t.Lineage(ctx, a)
	if err != nil {
		return 0, 0, err
	}
	pathB, err := t.Lineage(ctx, b)
	if err != nil {
		return 0, 0, err
	}

	slices.Reverse(pathA)
	slices.Reverse(pathB)

	for i, idA := range pathA {
		for j, idB := range pathB {
			if idA == idB {
				return i + j, idA, nil
			}
		}
	}
	return 0, 0, taxa.ErrNotFound
}
