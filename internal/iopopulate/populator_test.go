package iopopulate_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/iopopulate"
	"github.com/gnames/gntree/internal/iosqlite"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/errcode"
	"github.com/gnames/gntree/pkg/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceFetcher replays an in-memory record slice, standing in for the
// taxdump fetcher.
type sliceFetcher struct {
	recs []taxa.Record
}

func (f *sliceFetcher) Fetch(
	_ context.Context,
	_ string,
	fn func(rec taxa.Record) error,
) error {
	for _, rec := range f.recs {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(":memory:"),
		config.OptDatabaseBatchSize(2),
		config.OptJobsNumber(2),
	})
	return cfg
}

func connect(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	op := iosqlite.New()
	require.NoError(t, op.Connect(t.Context(), &cfg.Database))
	t.Cleanup(func() { op.Close() })
	return op
}

func TestBuild(t *testing.T) {
	cfg := testConfig()
	op := connect(t, cfg)

	// 1 -> 2 -> 4, 1 -> 3. Node 4 arrives before its parent: forward
	// references must not break the build.
	f := &sliceFetcher{recs: []taxa.Record{
		{ID: 4, Name: "Chordata", ParentID: 2, Rank: "phylum"},
		{ID: 1, Name: "root", ParentID: 1, Rank: "no rank"},
		{ID: 2, Name: "Animalia", ParentID: 1, Rank: "kingdom"},
		{ID: 3, Name: "Plantae", ParentID: 1, Rank: "kingdom"},
	}}

	p := iopopulate.New(cfg, op, f)
	require.NoError(t, p.Build(t.Context()))

	count, err := op.CountNodes(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	wantLineages := map[int]string{
		1: "!!1!!",
		2: "!!1!!2!!",
		3: "!!1!!3!!",
		4: "!!1!!2!!4!!",
	}
	for id, want := range wantLineages {
		n, err := op.Node(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, want, n.Lineage, "lineage of %d", id)
	}

	imp, err := op.LastImport(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 4, imp.Records)
	assert.Equal(t, "!!", imp.Delimiter)
	assert.Equal(t, 1, imp.RootID)
	assert.NotEmpty(t, imp.ID)
}

func TestBuildCustomDelimiterAndRoot(t *testing.T) {
	cfg := testConfig()
	cfg.Update([]config.Option{
		config.OptTreeDelimiter("::"),
		config.OptTreeRootID(10),
	})
	op := connect(t, cfg)

	f := &sliceFetcher{recs: []taxa.Record{
		{ID: 10, Name: "root", ParentID: 10, Rank: "no rank"},
		{ID: 20, Name: "Fungi", ParentID: 10, Rank: "kingdom"},
	}}

	p := iopopulate.New(cfg, op, f)
	require.NoError(t, p.Build(t.Context()))

	n, err := op.Node(t.Context(), 20)
	require.NoError(t, err)
	assert.Equal(t, "::10::20::", n.Lineage)

	imp, err := op.LastImport(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "::", imp.Delimiter)
	assert.Equal(t, 10, imp.RootID)
}

func TestBuildDuplicateID(t *testing.T) {
	cfg := testConfig()
	op := connect(t, cfg)

	f := &sliceFetcher{recs: []taxa.Record{
		{ID: 1, Name: "root", ParentID: 1, Rank: "no rank"},
		{ID: 1, Name: "root again", ParentID: 1, Rank: "no rank"},
	}}

	p := iopopulate.New(cfg, op, f)
	err := p.Build(t.Context())
	assert.Error(t, err)
}

// failingOperator delegates to a real store but refuses to persist
// lineages.
type failingOperator struct {
	db.Operator
}

var errDiskFull = errors.New("disk full")

func (f *failingOperator) UpdateLineages(
	_ context.Context,
	_ []taxa.LineageUpdate,
) error {
	return errDiskFull
}

func TestBuildLineageStoreFailure(t *testing.T) {
	// A store failure mid-phase cancels the worker group while ids are
	// still being fed. The store's error must surface from Build, not
	// the cancellation it caused.
	cfg := testConfig()
	cfg.Update([]config.Option{
		config.OptDatabaseBatchSize(1),
		config.OptJobsNumber(1),
	})
	op := connect(t, cfg)

	recs := []taxa.Record{{ID: 1, Name: "root", ParentID: 1, Rank: "no rank"}}
	for id := 2; id <= 5_000; id++ {
		recs = append(recs, taxa.Record{
			ID:       id,
			Name:     "n" + strconv.Itoa(id),
			ParentID: 1,
			Rank:     "species",
		})
	}

	p := iopopulate.New(cfg, &failingOperator{Operator: op}, &sliceFetcher{recs: recs})
	err := p.Build(t.Context())
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.PopulateLineageError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, errDiskFull)
}

func TestBuildSyntheticTree(t *testing.T) {
	// Depth 5, branching factor 3. Every leaf's lineage must have
	// exactly depth+1 elements.
	cfg := testConfig()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(50)})
	op := connect(t, cfg)

	var recs []taxa.Record
	recs = append(recs,
		taxa.Record{ID: 1, Name: "n1", ParentID: 1, Rank: "no rank"})
	nextID := 2
	level := []int{1}
	for depth := 1; depth <= 5; depth++ {
		var next []int
		for _, parent := range level {
			for range 3 {
				recs = append(recs, taxa.Record{
					ID:       nextID,
					Name:     "n" + string(rune('a'+depth)),
					ParentID: parent,
					Rank:     "clade",
				})
				next = append(next, nextID)
				nextID++
			}
		}
		level = next
	}

	p := iopopulate.New(cfg, op, &sliceFetcher{recs: recs})
	require.NoError(t, p.Build(t.Context()))

	// level now holds the leaves at depth 5.
	for _, leaf := range level {
		n, err := op.Node(t.Context(), leaf)
		require.NoError(t, err)
		path, err := taxa.DecodePath(n.Lineage, "!!")
		require.NoError(t, err)
		assert.Len(t, path, 6)
		assert.Equal(t, 1, path[0])
		assert.Equal(t, leaf, path[len(path)-1])
	}
}
