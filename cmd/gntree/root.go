package main

import (
	"fmt"
	"log/slog"

	"github.com/gnames/gntree/internal/ioconfig"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gntree",
		Short: "GNtree builds and queries a lineage tree index",
		Long: `GNtree maintains a taxonomy in a relational store where every node
carries its full root-to-node path as a delimited lineage string.
Ancestor tests become substring checks and subtree enumeration becomes
a single pattern scan, so no recursive queries are ever needed.

The tool provides three main phases:
  - create:   create the storage schema
  - populate: fetch a taxonomy dump and build the index
  - query:    answer tree questions against a populated store

Configuration precedence (highest to lowest):
  1. CLI flags (--source, --jobs, etc.)
  2. Environment variables (GNTREE_*)
  3. Config file (~/.config/gntree/config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via GNTREE_* environment variables.
  Nested fields use underscores (database.engine → GNTREE_DATABASE_ENGINE).

  Examples:
    GNTREE_DATABASE_ENGINE          Storage backend (sqlite/postgres)
    GNTREE_DATABASE_PATH            SQLite database file
    GNTREE_DATABASE_HOST            PostgreSQL host
    GNTREE_TREE_ROOT_ID             Root taxon id
    GNTREE_TREE_DELIMITER           Lineage delimiter
    GNTREE_LOG_LEVEL                Log level (debug/info/warn/error)

  See 'go doc github.com/gnames/gntree/pkg/config' for complete list.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			slog.SetDefault(logger.New(&cfg.Log))

			switch result.Source {
			case "file":
				slog.Debug("Using config file", "path", result.SourcePath)
			case "defaults+env":
				slog.Debug("Using built-in defaults with environment overrides")
			case "defaults":
				slog.Debug("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/gntree/config.yaml)")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntree")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getPopulateCmd())
	rootCmd.AddCommand(getQueryCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
