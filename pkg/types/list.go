package types

import (
	"sort"

	"github.com/google/uuid"
)

// FieldValue is one field's value on one item.
type FieldValue struct {
	FieldID uuid.UUID `json:"field_id"`
	Value   any       `json:"value"`
}

// List is a user-defined list with typed fields and items. Fields are keyed
// by field ID; iteration order is irrelevant because position is carried by
// each field's Order attribute. Items map item IDs to their value sequence,
// one FieldValue per field.
type List struct {
	ID     uuid.UUID                  `json:"id"`
	Name   string                     `json:"name"`
	Fields map[uuid.UUID]*Field       `json:"fields"`
	Items  map[uuid.UUID][]FieldValue `json:"items"`
}

// NewList creates an empty list with a fresh UUID v7 identifier.
func NewList(name string) (*List, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &List{
		ID:     id,
		Name:   name,
		Fields: make(map[uuid.UUID]*Field),
		Items:  make(map[uuid.UUID][]FieldValue),
	}, nil
}

// SortedFieldIDs returns the list's field IDs ordered by each field's Order
// attribute, breaking ties by ID so the result is deterministic.
func (l *List) SortedFieldIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l.Fields))
	for id := range l.Fields {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.Fields[ids[i]], l.Fields[ids[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Clone returns a deep copy of the list. Field structs and item value
// sequences are copied; values themselves are JSON scalars and need no
// copying.
func (l *List) Clone() *List {
	c := &List{
		ID:     l.ID,
		Name:   l.Name,
		Fields: make(map[uuid.UUID]*Field, len(l.Fields)),
		Items:  make(map[uuid.UUID][]FieldValue, len(l.Items)),
	}
	for id, f := range l.Fields {
		fc := *f
		c.Fields[id] = &fc
	}
	for id, values := range l.Items {
		vc := make([]FieldValue, len(values))
		copy(vc, values)
		c.Items[id] = vc
	}
	return c
}

// Validate checks that the list conforms to the storage schema: every field
// has a non-empty name and a recognized type, and every item value is a JSON
// scalar (bool, string, or number) attached to a known field. Returns a
// ValidationError describing the first violation found.
func (l *List) Validate() error {
	for id, f := range l.Fields {
		if f == nil {
			return Validationf("field %s is empty", id)
		}
		if f.Name == "" {
			return Validationf("field %s has no name", id)
		}
		if !IsValidFieldType(f.Type) {
			return Validationf("field %s has unknown type %q", id, f.Type)
		}
	}
	for itemID, values := range l.Items {
		for _, fv := range values {
			if _, ok := l.Fields[fv.FieldID]; !ok {
				return Validationf("item %s references unknown field %s", itemID, fv.FieldID)
			}
			if !isScalarValue(fv.Value) {
				return Validationf("item %s has a non-scalar value for field %s", itemID, fv.FieldID)
			}
		}
	}
	return nil
}

// isScalarValue reports whether v is a supported field value representation.
// JSON decoding produces bool, string, and float64; integer kinds are also
// accepted for values constructed in memory.
func isScalarValue(v any) bool {
	switch v.(type) {
	case bool, string, float64, int, int64:
		return true
	default:
		return false
	}
}
