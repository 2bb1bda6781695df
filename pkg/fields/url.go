package fields

import (
	"regexp"
	"strings"

	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// urlPattern is the permissive URL shape shared by url and image fields.
var urlPattern = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)

// validateURLValue applies the shared URL rules: the value must be a string,
// and either empty or an http(s) URL matching urlPattern.
func validateURLValue(value any, fieldID string) error {
	s, ok := value.(string)
	if !ok {
		return types.Validationf("%s expects a string value", fieldRef(fieldID))
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return types.Validationf("%s must start with http:// or https://", fieldRef(fieldID))
	}
	if !urlPattern.MatchString(s) {
		return types.Validationf("%s must be a valid URL starting with http:// or https://", fieldRef(fieldID))
	}
	return nil
}

// urlMetadata is the constraint description shared by url and image fields.
func urlMetadata() Metadata {
	return Metadata{
		ValueType: "string",
		Constraints: map[string]any{
			"format":          "url",
			"allowed_schemes": []string{"http", "https"},
		},
	}
}

// URLHandler handles URL fields with basic format validation.
type URLHandler struct{}

// TypeName returns the url discriminator.
func (URLHandler) TypeName() string {
	return types.FieldTypeURL
}

// DefaultValue returns the empty string.
func (URLHandler) DefaultValue() any {
	return ""
}

// Validate checks that the value is empty or a well-formed http(s) URL.
func (URLHandler) Validate(value any, fieldID string) error {
	return validateURLValue(value, fieldID)
}

// NewField builds a url field from a creation request.
func (URLHandler) NewField(create types.FieldCreate) *types.Field {
	return &types.Field{Name: create.Name, Type: types.FieldTypeURL}
}

// Metadata returns the URL format constraints.
func (URLHandler) Metadata() Metadata {
	return urlMetadata()
}
