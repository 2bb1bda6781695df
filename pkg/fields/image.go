package fields

import "github.com/mesh-intelligence/listmaker/pkg/types"

// ImageHandler handles image fields. Image values are URLs and share the
// url field's format validation.
type ImageHandler struct{}

// TypeName returns the image discriminator.
func (ImageHandler) TypeName() string {
	return types.FieldTypeImage
}

// DefaultValue returns the empty string.
func (ImageHandler) DefaultValue() any {
	return ""
}

// Validate checks that the value is empty or a well-formed http(s) URL.
func (ImageHandler) Validate(value any, fieldID string) error {
	return validateURLValue(value, fieldID)
}

// NewField builds an image field from a creation request.
func (ImageHandler) NewField(create types.FieldCreate) *types.Field {
	return &types.Field{Name: create.Name, Type: types.FieldTypeImage}
}

// Metadata returns the URL format constraints.
func (ImageHandler) Metadata() Metadata {
	return urlMetadata()
}
