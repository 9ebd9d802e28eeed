package testutil

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureMigrated_EveryCallerSeesTheFailure(t *testing.T) {
	migrateOnce, migrateErr = sync.Once{}, nil
	t.Cleanup(func() { migrateOnce, migrateErr = sync.Once{}, nil })

	boom := errors.New("relation already exists")
	calls := 0
	run := func() error {
		calls++
		return boom
	}

	assert.ErrorIs(t, ensureMigrated(run), boom)
	assert.ErrorIs(t, ensureMigrated(run), boom)
	assert.Equal(t, 1, calls)
}

func TestMigrationsDir_PointsAtRepoMigrations(t *testing.T) {
	assert.FileExists(t, filepath.Join(migrationsDir(), "00001_create_books.sql"))
}
