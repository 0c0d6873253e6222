package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/repository/memory"
	"github.com/mweegram/tickful/pkg/repository/sqlite"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tickful.db"))
	if err != nil {
		t.Fatalf("failed to create sqlite repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close sqlite repository: %v", err)
		}
	})
	return repo
}
