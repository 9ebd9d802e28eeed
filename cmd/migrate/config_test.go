package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookcatalog/internal/config"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")
	assert.Equal(t, "/custom/migrations", migrationsDir())
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")
	assert.Equal(t, "db/migrations", migrationsDir())
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	assert.Equal(t, config.DefaultDSN, databaseDSN())

	t.Setenv("DB_DSN", "postgres://u:p@db:5432/x")
	assert.Equal(t, "postgres://u:p@db:5432/x", databaseDSN())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(zap.NewNop())

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status", "create"}, names)
}

func TestCreateCmd_RequiresName(t *testing.T) {
	root := newRootCmd(zap.NewNop())
	root.SetArgs([]string{"create"})
	assert.Error(t, root.Execute())
}

func TestCreateCmd_WritesSQLFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	root := newRootCmd(zap.NewNop())
	root.SetArgs([]string{"create", "add_isbn"})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_add_isbn.sql"))

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
}
