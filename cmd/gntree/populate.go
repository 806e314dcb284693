package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/iofetch"
	"github.com/gnames/gntree/internal/iopopulate"
	"github.com/gnames/gntree/pkg/config"
	"github.com/spf13/cobra"
)

var (
	populateSource string
	populateJobs   int
	populateBatch  int
)

func getPopulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Fetch a taxonomy dump and build the lineage index",
		Long: `Populate the store with a taxonomy dump and build the lineage index.

This command:
  1. Downloads the dump archive (NCBI taxdump format) or reads a local copy
  2. Recreates the schema and bulk-inserts all taxonomy records
  3. Computes every node's lineage path with concurrent workers
  4. Builds indexes and records import provenance

The build is destructive: a previous store with the same location is
replaced. Do not query the store while populate is running.

Examples:
  gntree populate
  gntree populate --source /tmp/taxdump.tar.gz
  gntree populate --jobs 8 --batch 10000`,
		RunE: runPopulate,
	}

	cmd.Flags().StringVarP(&populateSource, "source", "s", "",
		"URL or local path of the taxonomy dump archive")
	cmd.Flags().IntVarP(&populateJobs, "jobs", "j", 0,
		"number of concurrent lineage workers")
	cmd.Flags().IntVarP(&populateBatch, "batch", "b", 0,
		"records per bulk insert batch")

	return cmd
}

func runPopulate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var opts []config.Option
	if populateSource != "" {
		opts = append(opts, config.OptFetchSourceURL(populateSource))
	}
	if populateJobs > 0 {
		opts = append(opts, config.OptJobsNumber(populateJobs))
	}
	if populateBatch > 0 {
		opts = append(opts, config.OptDatabaseBatchSize(populateBatch))
	}
	cfg.Update(opts)

	op := newOperator(cfg)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to store: <em>%s</em>", storeLocation(cfg))
	gn.Info("Building lineage index from <em>%s</em>", cfg.Fetch.SourceURL)

	populator := iopopulate.New(cfg, op, iofetch.New(cfg))
	if err := populator.Build(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Population complete!

Next steps:
  - Run '<em>gntree query</em>' to ask tree questions`)

	return nil
}
