package types

// Field types determine what values a field accepts.
const (
	FieldTypeBoolean = "boolean"
	FieldTypeText    = "text"
	FieldTypeNumber  = "number"
	FieldTypeURL     = "url"
	FieldTypeImage   = "image"
)

// validFieldTypes is the set of recognized field type discriminators.
var validFieldTypes = map[string]bool{
	FieldTypeBoolean: true,
	FieldTypeText:    true,
	FieldTypeNumber:  true,
	FieldTypeURL:     true,
	FieldTypeImage:   true,
}

// IsValidFieldType reports whether the given string is a recognized field type.
func IsValidFieldType(ft string) bool {
	return validFieldTypes[ft]
}

// Field defines a named, typed attribute of a list. Every item in the list
// carries exactly one value for each field.
type Field struct {
	Name      string `json:"name"`                // Human-readable name (required, non-empty).
	Type      string `json:"type"`                // One of the FieldType constants.
	Multiline bool   `json:"multiline,omitempty"` // Text fields only: render as multi-line input.
	Order     int    `json:"order"`               // Position among the list's fields; dense 0..n-1.
}

// FieldCreate is a request to add a field to a list. The field's ID and
// order are assigned by the repository, never by the request.
type FieldCreate struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Multiline bool   `json:"multiline,omitempty"`
}
