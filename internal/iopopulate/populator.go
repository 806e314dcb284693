// Package iopopulate implements the Populator contract: it ingests
// taxonomy records into the store and materializes every node's
// lineage path. This is an impure I/O package that implements
// contracts defined in pkg/.
package iopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/lifecycle"
	"github.com/gnames/gntree/pkg/taxa"
	"github.com/google/uuid"
)

// populator implements the lifecycle.Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
	fetcher  lifecycle.Fetcher
}

// New creates a new Populator.
func New(
	cfg *config.Config,
	op db.Operator,
	f lifecycle.Fetcher,
) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op, fetcher: f}
}

// Build runs the full write phase: recreate the schema, bulk-insert
// all records with empty lineage, compute and persist every lineage,
// build indexes and record provenance. The build must run with no
// concurrent readers; intermediate state is not query-consistent.
func (p *populator) Build(ctx context.Context) error {
	startTime := time.Now()
	slog.Info("Starting taxonomy build",
		"source", p.cfg.Fetch.SourceURL)

	if err := p.operator.InitSchema(ctx); err != nil {
		return err
	}

	parents, err := p.insertRecords(ctx)
	if err != nil {
		return err
	}

	if err = p.buildLineages(ctx, parents); err != nil {
		return err
	}

	slog.Info("Creating indexes")
	if err = p.operator.CreateIndexes(ctx); err != nil {
		return err
	}

	imp := taxa.Import{
		ID:         uuid.NewString(),
		Source:     p.cfg.Fetch.SourceURL,
		Records:    len(parents),
		RootID:     p.cfg.Tree.RootID,
		Delimiter:  p.cfg.Tree.Delimiter,
		ImportedAt: time.Now().UTC(),
	}
	if err = p.operator.SaveImport(ctx, imp); err != nil {
		return MetadataError(err)
	}

	duration := time.Since(startTime)
	slog.Info("Taxonomy build finished",
		"records", humanize.Comma(int64(len(parents))),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	return nil
}

// insertRecords streams records from the fetcher into the store in
// batches and collects the id-to-parent map the lineage phase walks.
func (p *populator) insertRecords(
	ctx context.Context,
) (map[int]int, error) {
	slog.Info("Step 1/3: Inserting taxonomy records")

	parents := make(map[int]int)
	batch := make([]taxa.Record, 0, p.cfg.Database.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.operator.InsertRecords(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err := p.fetcher.Fetch(ctx, p.cfg.Fetch.SourceURL,
		func(rec taxa.Record) error {
			if _, ok := parents[rec.ID]; ok {
				return DuplicateIDError(rec.ID)
			}
			parents[rec.ID] = rec.ParentID

			batch = append(batch, rec)
			if len(batch) == cap(batch) {
				if err := flush(); err != nil {
					return err
				}
				progressReport(len(parents), "taxonomy records")
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if err = flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))

	slog.Info("Records inserted",
		"count", humanize.Comma(int64(len(parents))))
	return parents, nil
}

// progressReport logs progress to stderr with humanized numbers.
// It clears the line before writing to avoid leftover characters.
func progressReport(recNum int, entity string) {
	str := fmt.Sprintf("Processed %s %s",
		humanize.Comma(int64(recNum)), entity)
	fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 80))
	fmt.Fprintf(os.Stderr, "\r%s", str)
}
