package seed

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/listmaker/internal/migrate"
	"github.com/mesh-intelligence/listmaker/internal/repository"
	"github.com/mesh-intelligence/listmaker/internal/storage"
	"github.com/mesh-intelligence/listmaker/pkg/fields"
	"github.com/mesh-intelligence/listmaker/pkg/types"
)

func newTestRepo(t *testing.T) *repository.ListRepository {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	manager := storage.NewManager(t.TempDir(), logger)
	repo, err := repository.New(fields.NewDefaultRegistry(), manager, migrate.NewMigrator(manager, logger))
	require.NoError(t, err)
	return repo
}

func TestRunSeedsSampleLists(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, NewSeeder(repo).Run())

	all := repo.GetAll()
	require.Len(t, all, 2)

	byName := make(map[string]*types.List)
	for _, l := range all {
		byName[l.Name] = l
	}
	require.Contains(t, byName, "Groceries")
	require.Contains(t, byName, "Books to Read")

	groceries := byName["Groceries"]
	assert.Len(t, groceries.Fields, 3)
	assert.Len(t, groceries.Items, 2)
	assert.NoError(t, groceries.Validate())

	books := byName["Books to Read"]
	assert.Len(t, books.Fields, 3)
	assert.Len(t, books.Items, 2)
	assert.NoError(t, books.Validate())
}

func TestSeededFieldOrdersAreDense(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, NewSeeder(repo).Run())

	for _, list := range repo.GetAll() {
		seen := make(map[int]bool)
		for _, f := range list.Fields {
			assert.False(t, seen[f.Order], "list %q has duplicate order %d", list.Name, f.Order)
			seen[f.Order] = true
			assert.GreaterOrEqual(t, f.Order, 0)
			assert.Less(t, f.Order, len(list.Fields))
		}
	}
}

func TestSeededItemsCoverAllFields(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, NewSeeder(repo).Run())

	for _, list := range repo.GetAll() {
		for itemID, values := range list.Items {
			assert.Len(t, values, len(list.Fields),
				"list %q item %s must carry one value per field", list.Name, itemID)
		}
	}
}
