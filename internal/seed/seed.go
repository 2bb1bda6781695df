// Package seed populates a repository with sample lists. The seeder only
// calls the repository's Add operation; it takes no part in persistence or
// migration.
package seed

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/listmaker/internal/repository"
	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// Seeder writes sample data through a list repository.
type Seeder struct {
	repo *repository.ListRepository
}

// NewSeeder creates a seeder over the given repository.
func NewSeeder(repo *repository.ListRepository) *Seeder {
	return &Seeder{repo: repo}
}

// Run adds the sample lists to the repository.
func (s *Seeder) Run() error {
	groceries, err := buildGroceries()
	if err != nil {
		return fmt.Errorf("building groceries list: %w", err)
	}
	books, err := buildBooks()
	if err != nil {
		return fmt.Errorf("building books list: %w", err)
	}

	if _, err := s.repo.Add(groceries); err != nil {
		return fmt.Errorf("seeding groceries list: %w", err)
	}
	if _, err := s.repo.Add(books); err != nil {
		return fmt.Errorf("seeding books list: %w", err)
	}
	return nil
}

func buildGroceries() (*types.List, error) {
	ids, err := newIDs(6)
	if err != nil {
		return nil, err
	}
	nameField, qtyField, purchasedField := ids[0], ids[1], ids[2]

	return &types.List{
		ID:   ids[3],
		Name: "Groceries",
		Fields: map[uuid.UUID]*types.Field{
			nameField:      {Name: "Item Name", Type: types.FieldTypeText, Order: 0},
			qtyField:       {Name: "Quantity", Type: types.FieldTypeNumber, Order: 1},
			purchasedField: {Name: "Purchased", Type: types.FieldTypeBoolean, Order: 2},
		},
		Items: map[uuid.UUID][]types.FieldValue{
			ids[4]: {
				{FieldID: nameField, Value: "Milk"},
				{FieldID: qtyField, Value: float64(2)},
				{FieldID: purchasedField, Value: false},
			},
			ids[5]: {
				{FieldID: nameField, Value: "Bread"},
				{FieldID: qtyField, Value: float64(1)},
				{FieldID: purchasedField, Value: true},
			},
		},
	}, nil
}

func buildBooks() (*types.List, error) {
	ids, err := newIDs(6)
	if err != nil {
		return nil, err
	}
	titleField, authorField, readField := ids[0], ids[1], ids[2]

	return &types.List{
		ID:   ids[3],
		Name: "Books to Read",
		Fields: map[uuid.UUID]*types.Field{
			titleField:  {Name: "Title", Type: types.FieldTypeText, Order: 0},
			authorField: {Name: "Author", Type: types.FieldTypeText, Order: 1},
			readField:   {Name: "Read", Type: types.FieldTypeBoolean, Order: 2},
		},
		Items: map[uuid.UUID][]types.FieldValue{
			ids[4]: {
				{FieldID: titleField, Value: "1984"},
				{FieldID: authorField, Value: "George Orwell"},
				{FieldID: readField, Value: true},
			},
			ids[5]: {
				{FieldID: titleField, Value: "The Great Gatsby"},
				{FieldID: authorField, Value: "F. Scott Fitzgerald"},
				{FieldID: readField, Value: false},
			},
		},
	}, nil
}

// newIDs generates n fresh UUID v7 identifiers.
func newIDs(n int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
