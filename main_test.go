package main

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The iofs source only registers files named {version}_{title}.up.sql /
// .down.sql; anything else is skipped without error. Guard that the embedded
// migrations actually resolve to a first version, otherwise --migrate can
// never create the schema.
func TestEmbeddedMigrationsResolve(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, _, err := src.ReadUp(version)
	require.NoError(t, err)
	up.Close()

	down, _, err := src.ReadDown(version)
	require.NoError(t, err)
	down.Close()
}
