// Package ioschema implements the lifecycle.SchemaManager interface.
// This is an impure I/O package that drives schema creation through a
// connected database operator.
package ioschema

import (
	"context"

	"github.com/gnames/gntree/pkg/db"
	"github.com/gnames/gntree/pkg/lifecycle"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create drops and recreates the taxonomy and imports relations and
// builds their indexes. Any previously stored data is lost.
func (m *manager) Create(ctx context.Context) error {
	if err := m.operator.InitSchema(ctx); err != nil {
		return err
	}
	return m.operator.CreateIndexes(ctx)
}
