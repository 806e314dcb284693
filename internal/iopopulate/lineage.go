package iopopulate

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gntree/pkg/taxa"
	"golang.org/x/sync/errgroup"
)

// buildLineages implements the second build phase: for every inserted
// node, walk the in-memory parent map up to the root, serialize the
// path with the configured delimiter and persist it.
//
// Concurrent processing follows the usual worker layout: JobsNumber
// walkers feed a single collector that writes update batches.
func (p *populator) buildLineages(
	ctx context.Context,
	parents map[int]int,
) error {
	slog.Info("Step 2/3: Computing lineage paths",
		"jobs", p.cfg.JobsNumber)

	chIn := make(chan int)
	chOut := make(chan taxa.LineageUpdate)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	rootID := p.cfg.Tree.RootID
	delimiter := p.cfg.Tree.Delimiter

	for range p.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for id := range chIn {
				up := taxa.LineageUpdate{
					ID: id,
					Lineage: taxa.EncodePath(
						pathForID(id, rootID, parents), delimiter),
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case chOut <- up:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		return p.saveLineages(ctx, chOut, len(parents))
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	// On cancellation the feed stops but the group is still awaited:
	// the first failure inside the group is the error that matters,
	// not the cancellation it triggered.
feed:
	for id := range parents {
		select {
		case <-ctx.Done():
			break feed
		case chIn <- id:
		}
	}
	close(chIn)

	return g.Wait()
}

// saveLineages collects computed lineages from workers and persists
// them in batches.
func (p *populator) saveLineages(
	ctx context.Context,
	chOut <-chan taxa.LineageUpdate,
	total int,
) error {
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Lineage: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	batch := make([]taxa.LineageUpdate, 0, p.cfg.Database.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.operator.UpdateLineages(ctx, batch); err != nil {
			return LineageError(err)
		}
		bar.Add(len(batch))
		batch = batch[:0]
		return nil
	}

	for up := range chOut {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch = append(batch, up)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// pathForID walks parent links from a node up to the root and returns
// the path in root-to-node order. The walk stops at the root id, at a
// missing parent (an effective root, not an error), at a self-parented
// node, or when a cycle is detected.
func pathForID(id, rootID int, parents map[int]int) []int {
	var path []int
	visited := make(map[int]bool)

	cur := id
	for {
		if visited[cur] {
			break
		}
		visited[cur] = true
		path = append(path, cur)

		if cur == rootID {
			break
		}
		parent, ok := parents[cur]
		if !ok || parent == cur {
			break
		}
		cur = parent
	}

	slices.Reverse(path)
	return path
}
