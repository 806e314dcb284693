package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/ioschema"
	"github.com/gnames/gntree/pkg/lifecycle"
	"github.com/spf13/cobra"
)

var (
	forceCreate bool
)

func getCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the storage schema",
		Long: `Create the lineage tree storage schema from scratch.

This command:
  1. Connects to the configured storage backend
  2. Checks for an existing store and prompts for confirmation if found
  3. Creates the taxonomy and imports relations with their indexes

Use --force to skip confirmation and drop an existing store automatically.

Examples:
  gntree create
  gntree create --force
  gntree create --config custom.yaml`,
		RunE: runCreate,
	}

	cmd.Flags().BoolVar(&forceCreate, "force", false,
		"drop an existing store before creating the schema (destructive)")

	return cmd
}

// confirmBeforeDrop reports whether the user must confirm the
// destructive schema reset. An unreadable count means no previous
// store; an empty store loses nothing.
func confirmBeforeDrop(count int, err error, force bool) bool {
	return err == nil && count > 0 && !force
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	op := newOperator(cfg)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to store: <em>%s</em>", storeLocation(cfg))

	// Only a store that actually holds data is worth a confirmation.
	if count, err := op.CountNodes(ctx); confirmBeforeDrop(count, err, forceCreate) {
		gn.Warn(
			"The store already holds %d nodes. "+
				"Creating the schema drops ALL existing data.", count,
		)
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read user input: %w", err)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	var sm lifecycle.SchemaManager = ioschema.NewManager(op)
	if err := sm.Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Schema creation complete!

Next steps:
  - Run '<em>gntree populate</em>' to fetch a taxonomy dump and build the index
  - Run '<em>gntree query</em>' to ask tree questions`)

	return nil
}
