// Package types defines the List, Field, and FieldValue entity types,
// field creation requests, and standard error types for the listmaker
// storage system.
package types
