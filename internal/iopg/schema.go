package iopg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// taxonomy maps the taxonomy relation for GORM AutoMigrate.
// Secondary indexes are intentionally absent from the model: they are
// created after bulk load (see CreateIndexes) to keep inserts fast.
type taxonomy struct {
	TaxaID     int    `gorm:"column:taxa_id;primaryKey;autoIncrement:false"`
	TaxaName   string `gorm:"column:taxa_name;type:varchar(255)"`
	ParentTaxa int    `gorm:"column:parent_taxa"`
	Rank       string `gorm:"column:rank;type:varchar(50)"`
	Lineage    string `gorm:"column:lineage;type:varchar(255)"`
}

func (taxonomy) TableName() string { return "taxonomy" }

// importRow maps the imports provenance relation.
type importRow struct {
	ID         string `gorm:"column:id;type:varchar(36);primaryKey"`
	Source     string `gorm:"column:source;type:text"`
	Records    int    `gorm:"column:records"`
	RootID     int    `gorm:"column:root_id"`
	Delimiter  string `gorm:"column:delimiter;type:varchar(10)"`
	ImportedAt time.Time `gorm:"column:imported_at"`
}

func (importRow) TableName() string { return "imports" }

// InitSchema drops any existing relations and recreates them with GORM
// AutoMigrate, bridged from the pgx pool. Destructive.
func (p *pgOperator) InitSchema(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(p.pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	drops := []string{
		"DROP TABLE IF EXISTS taxonomy CASCADE",
		"DROP TABLE IF EXISTS imports CASCADE",
	}
	for _, stmt := range drops {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return SchemaError(err)
		}
	}

	if err := gormDB.AutoMigrate(&taxonomy{}, &importRow{}); err != nil {
		return SchemaError(err)
	}
	return nil
}

// CreateIndexes builds the secondary indexes after bulk load.
// Idempotent.
func (p *pgOperator) CreateIndexes(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	stmts := []string{
		"CREATE INDEX IF NOT EXISTS taxname ON taxonomy (taxa_name)",
		"CREATE INDEX IF NOT EXISTS parent_id ON taxonomy (parent_taxa)",
		"CREATE INDEX IF NOT EXISTS lineage_path ON taxonomy (lineage text_pattern_ops)",
	}

	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return IndexError(err)
		}
	}
	return nil
}
