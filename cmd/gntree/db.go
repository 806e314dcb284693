package main

import (
	"github.com/gnames/gntree/internal/iopg"
	"github.com/gnames/gntree/internal/iosqlite"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/db"
)

// newOperator returns the database operator for the configured engine.
func newOperator(cfg *config.Config) db.Operator {
	if cfg.Database.Engine == "postgres" {
		return iopg.New()
	}
	return iosqlite.New()
}

// storeLocation describes the configured store for user messages.
func storeLocation(cfg *config.Config) string {
	if cfg.Database.Engine == "postgres" {
		return cfg.Database.Host + "/" + cfg.Database.Database
	}
	return cfg.Database.Path
}
