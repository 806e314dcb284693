package ioschema_test

import (
	"testing"

	"github.com/gnames/gntree/internal/ioschema"
	"github.com/gnames/gntree/internal/iosqlite"
	"github.com/gnames/gntree/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabasePath(":memory:")})

	op := iosqlite.New()
	require.NoError(t, op.Connect(t.Context(), &cfg.Database))
	t.Cleanup(func() { op.Close() })

	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(t.Context()))

	count, err := op.CountNodes(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)

	// Create is destructive and repeatable.
	require.NoError(t, sm.Create(t.Context()))
}

func TestCreateNotConnected(t *testing.T) {
	sm := ioschema.NewManager(iosqlite.New())
	assert.Error(t, sm.Create(t.Context()))
}
