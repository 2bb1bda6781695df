// Package repository holds the in-memory authoritative store of all lists
// and writes every mutation through to disk.
package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/listmaker/internal/migrate"
	"github.com/mesh-intelligence/listmaker/internal/storage"
	"github.com/mesh-intelligence/listmaker/pkg/fields"
	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// Move directions for MoveField.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// ListRepository is the single in-memory source of truth for all lists.
// Every mutation validates first, persists the updated list, and only then
// swaps it into the in-memory map, so a failed write leaves memory and disk
// both untouched. Reads never touch disk. All type-specific field logic is
// delegated to the handler registry.
//
// Returned lists must be treated as read-only; mutations replace stored
// lists rather than modifying them in place.
type ListRepository struct {
	mu       sync.RWMutex
	registry *fields.Registry
	manager  *storage.Manager
	lists    map[uuid.UUID]*types.List
}

// New runs all pending migrations, then loads every list into memory.
// A failing migration halts construction; the repository must not serve
// requests against a partially migrated store.
func New(registry *fields.Registry, manager *storage.Manager, migrator *migrate.Migrator) (*ListRepository, error) {
	if err := migrator.Run(); err != nil {
		return nil, err
	}
	lists, err := manager.LoadAll()
	if err != nil {
		return nil, err
	}
	return &ListRepository{
		registry: registry,
		manager:  manager,
		lists:    lists,
	}, nil
}

// Add stores a fully-formed list and persists it.
func (r *ListRepository) Add(list *types.List) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.manager.WriteList(list); err != nil {
		return nil, err
	}
	r.lists[list.ID] = list
	return list, nil
}

// Get returns the list with the given ID.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) Get(id uuid.UUID) (*types.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return list, nil
}

// GetAll returns every list, ordered by ID.
func (r *ListRepository) GetAll() []*types.List {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*types.List, 0, len(r.lists))
	for _, list := range r.lists {
		all = append(all, list)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID.String() < all[j].ID.String()
	})
	return all
}

// Update renames a list. A nil name leaves it unchanged.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) Update(id uuid.UUID, name *string) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	updated := list.Clone()
	if name != nil {
		updated.Name = *name
	}
	return r.persist(updated)
}

// Delete removes a list from memory and disk.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return types.ErrNotFound
	}
	if _, err := r.manager.DeleteList(id); err != nil {
		return err
	}
	delete(r.lists, id)
	return nil
}

// AddField resolves the handler for the creation request, assigns a fresh
// field ID and the next order value, inserts the field, and backfills every
// existing item with the handler's default value so the item/field-set
// invariant holds.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) AddField(listID uuid.UUID, create types.FieldCreate) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}

	field, err := r.registry.NewField(create)
	if err != nil {
		return nil, err
	}
	defaultValue, err := r.registry.DefaultValue(field)
	if err != nil {
		return nil, err
	}
	fieldID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating field ID: %w", err)
	}

	updated := list.Clone()
	field.Order = nextOrder(updated)
	updated.Fields[fieldID] = field
	for itemID, values := range updated.Items {
		updated.Items[itemID] = append(values, types.FieldValue{FieldID: fieldID, Value: defaultValue})
	}
	return r.persist(updated)
}

// DeleteField removes a field and strips the corresponding value from every
// item, then renormalizes the remaining field orders to dense 0..n-1.
// Returns ErrNotFound if the list or field does not exist.
func (r *ListRepository) DeleteField(listID, fieldID uuid.UUID) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if _, ok := list.Fields[fieldID]; !ok {
		return nil, types.ErrNotFound
	}

	updated := list.Clone()
	delete(updated.Fields, fieldID)
	for itemID, values := range updated.Items {
		kept := values[:0]
		for _, fv := range values {
			if fv.FieldID != fieldID {
				kept = append(kept, fv)
			}
		}
		updated.Items[itemID] = kept
	}
	normalizeOrders(updated)
	return r.persist(updated)
}

// ReorderFields applies a full set of new field orders. The orders map must
// cover exactly the list's current fields with no duplicate order values;
// orders are then renormalized to dense 0..n-1.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) ReorderFields(listID uuid.UUID, orders map[uuid.UUID]int) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}

	if len(orders) != len(list.Fields) {
		return nil, types.Validationf("must provide orders for all fields")
	}
	seen := make(map[int]bool, len(orders))
	for fieldID, order := range orders {
		if _, ok := list.Fields[fieldID]; !ok {
			return nil, types.Validationf("must provide orders for all fields")
		}
		if seen[order] {
			return nil, types.Validationf("duplicate order values are not allowed")
		}
		seen[order] = true
	}

	updated := list.Clone()
	for fieldID, order := range orders {
		updated.Fields[fieldID].Order = order
	}
	normalizeOrders(updated)
	return r.persist(updated)
}

// MoveField swaps a field's order with its neighbor in sorted order.
// Direction must be "up" or "down"; moving the first field up or the last
// field down is a validation error.
// Returns ErrNotFound if the list or field does not exist.
func (r *ListRepository) MoveField(listID, fieldID uuid.UUID, direction string) (*types.List, error) {
	if direction != MoveUp && direction != MoveDown {
		return nil, types.Validationf("direction must be %q or %q", MoveUp, MoveDown)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if _, ok := list.Fields[fieldID]; !ok {
		return nil, types.ErrNotFound
	}

	sorted := list.SortedFieldIDs()
	idx := 0
	for i, id := range sorted {
		if id == fieldID {
			idx = i
			break
		}
	}

	var swapIdx int
	switch direction {
	case MoveUp:
		if idx == 0 {
			return nil, types.Validationf("cannot move first field up")
		}
		swapIdx = idx - 1
	case MoveDown:
		if idx == len(sorted)-1 {
			return nil, types.Validationf("cannot move last field down")
		}
		swapIdx = idx + 1
	}

	updated := list.Clone()
	a, b := updated.Fields[sorted[idx]], updated.Fields[sorted[swapIdx]]
	a.Order, b.Order = b.Order, a.Order
	return r.persist(updated)
}

// AddItem validates the provided values against the list's fields, assigns
// a fresh item ID, and stores the value sequence ordered by field order.
// Returns ErrNotFound if no such list exists.
func (r *ListRepository) AddItem(listID uuid.UUID, values map[uuid.UUID]any) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if err := r.validateValues(list, values); err != nil {
		return nil, err
	}
	itemID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating item ID: %w", err)
	}

	updated := list.Clone()
	updated.Items[itemID] = buildValues(updated, values)
	return r.persist(updated)
}

// UpdateItem validates the provided values and replaces the item's entire
// value sequence; there is no partial merge.
// Returns ErrNotFound if the list or item does not exist.
func (r *ListRepository) UpdateItem(listID, itemID uuid.UUID, values map[uuid.UUID]any) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if _, ok := list.Items[itemID]; !ok {
		return nil, types.ErrNotFound
	}
	if err := r.validateValues(list, values); err != nil {
		return nil, err
	}

	updated := list.Clone()
	updated.Items[itemID] = buildValues(updated, values)
	return r.persist(updated)
}

// DeleteItem removes an item from a list.
// Returns ErrNotFound if the list or item does not exist.
func (r *ListRepository) DeleteItem(listID, itemID uuid.UUID) (*types.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[listID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if _, ok := list.Items[itemID]; !ok {
		return nil, types.ErrNotFound
	}

	updated := list.Clone()
	delete(updated.Items, itemID)
	return r.persist(updated)
}

// persist writes the updated list to disk and, on success, swaps it into
// the in-memory map. Callers must hold the write lock.
func (r *ListRepository) persist(updated *types.List) (*types.List, error) {
	if err := r.manager.WriteList(updated); err != nil {
		return nil, err
	}
	r.lists[updated.ID] = updated
	return updated, nil
}

// validateValues checks that values covers exactly the list's field set and
// that every value passes its field handler's validation.
func (r *ListRepository) validateValues(list *types.List, values map[uuid.UUID]any) error {
	if len(values) != len(list.Fields) {
		return types.Validationf("must provide values for all fields")
	}
	for fieldID, value := range values {
		field, ok := list.Fields[fieldID]
		if !ok {
			return types.Validationf("field %s does not exist", fieldID)
		}
		if err := r.registry.Validate(field, value, fieldID.String()); err != nil {
			return err
		}
	}
	return nil
}

// buildValues assembles an item's value sequence ordered by field order.
func buildValues(list *types.List, values map[uuid.UUID]any) []types.FieldValue {
	out := make([]types.FieldValue, 0, len(values))
	for _, fieldID := range list.SortedFieldIDs() {
		out = append(out, types.FieldValue{FieldID: fieldID, Value: values[fieldID]})
	}
	return out
}

// nextOrder returns max(existing orders) + 1, or 0 when the list has no
// fields.
func nextOrder(list *types.List) int {
	next := 0
	for _, f := range list.Fields {
		if f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}

// normalizeOrders sorts fields by their current order and reassigns dense
// orders 0..n-1.
func normalizeOrders(list *types.List) {
	for idx, fieldID := range list.SortedFieldIDs() {
		list.Fields[fieldID].Order = idx
	}
}
