// Package ioquery implements the gntree.Taxonomy query surface over a
// populated store. This is an impure I/O package that implements
// contracts defined in pkg/.
//
// The index is immutable after the build phase, so node rows are
// served through a read-through LRU cache and all operations are safe
// for concurrent readers.
package ioquery

import (
	"context"
	"errors"
	"sync"

	"github.com/gnames/gnparser"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/gntree"
	"github.com/gnames/gntree/pkg/taxa"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the read-through node cache. NCBI Taxonomy holds
// about 2.5M nodes; 32k entries cover the hot upper tree.
const cacheSize = 32_768

// taxonomy implements the gntree.Taxonomy interface.
type taxonomy struct {
	operator  db.Operator
	rootID    int
	delimiter string
	cache     *lru.Cache[int, taxa.Node]

	// gnparser instances are not goroutine-safe.
	parser   gnparser.GNparser
	parserMu sync.Mutex
}

// New creates a Taxonomy over an already populated store. The
// delimiter and root id the store was built with are recovered from
// the imports relation, or re-derived from the root node's stored
// lineage for stores that predate it. Config values are the last
// resort; querying with a delimiter the store was not built with
// would silently break every pattern-based operation.
func New(
	ctx context.Context,
	cfg *config.Config,
	op db.Operator,
) (gntree.Taxonomy, error) {
	t := &taxonomy{
		operator:  op,
		rootID:    cfg.Tree.RootID,
		delimiter: cfg.Tree.Delimiter,
		parser:    gnparser.New(gnparser.NewConfig()),
	}

	cache, err := lru.New[int, taxa.Node](cacheSize)
	if err != nil {
		return nil, CacheError(err)
	}
	t.cache = cache

	if err = t.resolveDelimiter(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveDelimiter recovers the effective delimiter and root id of the
// store.
func (t *taxonomy) resolveDelimiter(ctx context.Context) error {
	imp, err := t.operator.LastImport(ctx)
	if err == nil {
		if imp.RootID > 0 {
			t.rootID = imp.RootID
		}
		if taxa.ValidDelimiter(imp.Delimiter) {
			t.delimiter = imp.Delimiter
		}
		return nil
	}
	if !errors.Is(err, taxa.ErrNotFound) {
		return err
	}

	// No provenance row: re-derive from the root's stored lineage.
	root, err := t.operator.Node(ctx, t.rootID)
	if errors.Is(err, taxa.ErrNotFound) {
		// Empty or partial store; keep configured values.
		return nil
	}
	if err != nil {
		return err
	}

	delimiter, err := taxa.DeriveDelimiter(root.Lineage, t.rootID)
	if err != nil {
		return DelimiterError(root.Lineage, err)
	}
	t.delimiter = delimiter
	return nil
}

// node returns a stored row through the read-through cache. Misses on
// unknown ids are not cached.
func (t *taxonomy) node(ctx context.Context, id int) (taxa.Node, error) {
	if n, ok := t.cache.Get(id); ok {
		return n, nil
	}
	n, err := t.operator.Node(ctx, id)
	if err != nil {
		return taxa.Node{}, err
	}
	t.cache.Add(id, n)
	return n, nil
}

// canonical parses a scientific name and returns its simple canonical
// form, or an empty string when the name does not parse.
func (t *taxonomy) canonical(name string) string {
	t.parserMu.Lock()
	defer t.parserMu.Unlock()

	parsed := t.parser.ParseName(name)
	if !parsed.Parsed {
		return ""
	}
	return parsed.Canonical.Simple
}
