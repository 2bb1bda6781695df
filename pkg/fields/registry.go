package fields

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// Registry maps field type discriminators to their handlers. It is the
// single source of truth for which field types exist. A registry is built
// once at process start and treated as read-only afterwards; it adds no
// logic of its own beyond dispatch.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// NewDefaultRegistry creates a registry with the five built-in handlers
// registered: boolean, text, number, url, and image.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, h := range []Handler{
		BooleanHandler{},
		TextHandler{},
		NumberHandler{},
		URLHandler{},
		ImageHandler{},
	} {
		// Built-in type names are distinct; Register cannot fail here.
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a handler to the registry.
// Returns ErrHandlerRegistered if a handler for the same type name is
// already present; handlers are never silently overridden.
func (r *Registry) Register(h Handler) error {
	name := h.TypeName()
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %q", types.ErrHandlerRegistered, name)
	}
	r.handlers[name] = h
	return nil
}

// Handler returns the handler for the given type name.
// Returns ErrHandlerNotFound if the type is unknown.
func (r *Registry) Handler(typeName string) (Handler, error) {
	h, ok := r.handlers[typeName]
	if !ok {
		return nil, fmt.Errorf("%w %q", types.ErrHandlerNotFound, typeName)
	}
	return h, nil
}

// HandlerForField returns the handler matching the field's own type
// discriminator.
func (r *Registry) HandlerForField(field *types.Field) (Handler, error) {
	return r.Handler(field.Type)
}

// HandlerForCreate returns the handler matching the creation request's type
// discriminator.
func (r *Registry) HandlerForCreate(create types.FieldCreate) (Handler, error) {
	return r.Handler(create.Type)
}

// Handlers returns all registered handlers, ordered by type name.
func (r *Registry) Handlers() []Handler {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	handlers := make([]Handler, 0, len(names))
	for _, name := range names {
		handlers = append(handlers, r.handlers[name])
	}
	return handlers
}

// DefaultValue returns the default value for a field, delegated to its
// handler.
func (r *Registry) DefaultValue(field *types.Field) (any, error) {
	h, err := r.HandlerForField(field)
	if err != nil {
		return nil, err
	}
	return h.DefaultValue(), nil
}

// Validate checks a value against a field's rules, delegated to its
// handler.
func (r *Registry) Validate(field *types.Field, value any, fieldID string) error {
	h, err := r.HandlerForField(field)
	if err != nil {
		return err
	}
	return h.Validate(value, fieldID)
}

// NewField builds a field from a creation request, delegated to the
// handler matching the request's type.
func (r *Registry) NewField(create types.FieldCreate) (*types.Field, error) {
	h, err := r.HandlerForCreate(create)
	if err != nil {
		return nil, err
	}
	return h.NewField(create), nil
}
