package fields

import "github.com/mesh-intelligence/listmaker/pkg/types"

// BooleanHandler handles boolean fields.
type BooleanHandler struct{}

// TypeName returns the boolean discriminator.
func (BooleanHandler) TypeName() string {
	return types.FieldTypeBoolean
}

// DefaultValue returns false.
func (BooleanHandler) DefaultValue() any {
	return false
}

// Validate checks that the value is a bool.
func (BooleanHandler) Validate(value any, fieldID string) error {
	if _, ok := value.(bool); !ok {
		return types.Validationf("%s expects a boolean value", fieldRef(fieldID))
	}
	return nil
}

// NewField builds a boolean field from a creation request.
func (BooleanHandler) NewField(create types.FieldCreate) *types.Field {
	return &types.Field{Name: create.Name, Type: types.FieldTypeBoolean}
}

// Metadata returns the boolean constraint description (none).
func (BooleanHandler) Metadata() Metadata {
	return Metadata{ValueType: "boolean", Constraints: map[string]any{}}
}
