// Package fields implements the field type handlers and handler registry
// for the listmaker storage system. Each handler encapsulates all
// type-specific behavior for one field type; new types are added by
// implementing Handler and registering it, without touching the repository.
package fields

import "github.com/mesh-intelligence/listmaker/pkg/types"

// Handler encapsulates the type-specific logic for a field type: default
// value generation, validation, field instantiation, and constraint
// metadata.
type Handler interface {
	// TypeName returns the discriminator for this field type.
	// Unique within a registry.
	TypeName() string

	// DefaultValue returns the value backfilled onto existing items when
	// a field of this type is added to their list.
	DefaultValue() any

	// Validate checks a value against the type's rules. fieldID, when
	// non-empty, names the field in error messages. Returns a
	// *types.ValidationError on failure.
	Validate(value any, fieldID string) error

	// NewField builds a Field from a creation request. The caller is
	// responsible for assigning the field's ID and order.
	NewField(create types.FieldCreate) *types.Field

	// Metadata returns the machine-readable validation constraints for
	// client-side forms.
	Metadata() Metadata
}

// Metadata describes a handler's validation rules for API responses.
// Handlers without constraints return an empty constraint map.
type Metadata struct {
	ValueType   string         `json:"value_type"`
	Constraints map[string]any `json:"constraints"`
}

// fieldRef names the offending field in validation messages.
func fieldRef(fieldID string) string {
	if fieldID == "" {
		return "field"
	}
	return "field " + fieldID
}
