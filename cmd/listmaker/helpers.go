// Shared helpers for listmaker CLI commands.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/listmaker/internal/migrate"
	"github.com/mesh-intelligence/listmaker/internal/repository"
	"github.com/mesh-intelligence/listmaker/internal/storage"
	"github.com/mesh-intelligence/listmaker/pkg/fields"
)

// openRepository resolves the storage root, runs pending migrations, and
// loads all lists into a repository backed by the default field handler
// registry.
func openRepository() (*repository.ListRepository, *fields.Registry, error) {
	storageDir, err := resolveStorageDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve storage dir: %w", err)
	}

	registry := fields.NewDefaultRegistry()
	manager := storage.NewManager(storageDir, nil)
	migrator := migrate.NewMigrator(manager, nil)

	repo, err := repository.New(registry, manager, migrator)
	if err != nil {
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, registry, nil
}
