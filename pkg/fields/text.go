package fields

import (
	"regexp"
	"unicode/utf8"

	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// TextHandler handles text fields with optional length and pattern rules.
// The zero value applies no constraints.
type TextHandler struct {
	MinLength int            // Minimum length in runes; 0 means no minimum.
	MaxLength int            // Maximum length in runes; 0 means no maximum.
	Pattern   *regexp.Regexp // Pattern the value must match; nil means none.
}

// TypeName returns the text discriminator.
func (TextHandler) TypeName() string {
	return types.FieldTypeText
}

// DefaultValue returns the empty string.
func (TextHandler) DefaultValue() any {
	return ""
}

// Validate checks that the value is a string satisfying the configured
// length and pattern rules.
func (h TextHandler) Validate(value any, fieldID string) error {
	s, ok := value.(string)
	if !ok {
		return types.Validationf("%s expects a string value", fieldRef(fieldID))
	}
	n := utf8.RuneCountInString(s)
	if h.MinLength > 0 && n < h.MinLength {
		return types.Validationf("%s must be at least %d characters long", fieldRef(fieldID), h.MinLength)
	}
	if h.MaxLength > 0 && n > h.MaxLength {
		return types.Validationf("%s must be at most %d characters long", fieldRef(fieldID), h.MaxLength)
	}
	if h.Pattern != nil && !h.Pattern.MatchString(s) {
		return types.Validationf("%s must match pattern: %s", fieldRef(fieldID), h.Pattern)
	}
	return nil
}

// NewField builds a text field, carrying over the multiline setting.
func (TextHandler) NewField(create types.FieldCreate) *types.Field {
	return &types.Field{Name: create.Name, Type: types.FieldTypeText, Multiline: create.Multiline}
}

// Metadata returns the configured length and pattern constraints.
func (h TextHandler) Metadata() Metadata {
	constraints := map[string]any{}
	if h.MinLength > 0 {
		constraints["min_length"] = h.MinLength
	}
	if h.MaxLength > 0 {
		constraints["max_length"] = h.MaxLength
	}
	if h.Pattern != nil {
		constraints["pattern"] = h.Pattern.String()
	}
	return Metadata{ValueType: "string", Constraints: constraints}
}
