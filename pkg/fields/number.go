package fields

import (
	"math"

	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// NumberHandler handles integer number fields with optional bounds.
// The zero value applies no constraints.
type NumberHandler struct {
	MinValue *int64 // Minimum allowed value; nil means no minimum.
	MaxValue *int64 // Maximum allowed value; nil means no maximum.
}

// TypeName returns the number discriminator.
func (NumberHandler) TypeName() string {
	return types.FieldTypeNumber
}

// DefaultValue returns the configured minimum when it is positive, else 0.
// Numbers are float64 because JSON numbers decode as float64.
func (h NumberHandler) DefaultValue() any {
	if h.MinValue != nil && *h.MinValue > 0 {
		return float64(*h.MinValue)
	}
	return float64(0)
}

// Validate checks that the value is an integral number within the
// configured bounds.
func (h NumberHandler) Validate(value any, fieldID string) error {
	n, ok := asInt64(value)
	if !ok {
		return types.Validationf("%s expects a number value", fieldRef(fieldID))
	}
	if h.MinValue != nil && n < *h.MinValue {
		return types.Validationf("%s must be at least %d", fieldRef(fieldID), *h.MinValue)
	}
	if h.MaxValue != nil && n > *h.MaxValue {
		return types.Validationf("%s must be at most %d", fieldRef(fieldID), *h.MaxValue)
	}
	return nil
}

// NewField builds a number field from a creation request.
func (NumberHandler) NewField(create types.FieldCreate) *types.Field {
	return &types.Field{Name: create.Name, Type: types.FieldTypeNumber}
}

// Metadata returns the configured bound constraints.
func (h NumberHandler) Metadata() Metadata {
	constraints := map[string]any{}
	if h.MinValue != nil {
		constraints["min_value"] = *h.MinValue
	}
	if h.MaxValue != nil {
		constraints["max_value"] = *h.MaxValue
	}
	return Metadata{ValueType: "integer", Constraints: constraints}
}

// asInt64 converts supported numeric representations to int64. JSON numbers
// decode as float64; only integral values are accepted.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
