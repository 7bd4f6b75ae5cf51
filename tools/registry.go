package tools

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages named tool schemas. Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]Schema),
	}
}

// Register adds a tool schema to the registry. Returns ErrAlreadyExists if
// a tool with the same name is already registered; use Replace to update.
func (r *Registry) Register(schema Schema) error {
	if schema.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, schema.Name)
	}

	r.schemas[schema.Name] = schema
	return nil
}

// Replace updates an existing tool's schema. Returns ErrNotFound if no tool
// with the given name is registered.
func (r *Registry) Replace(schema Schema) error {
	if schema.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, schema.Name)
	}

	r.schemas[schema.Name] = schema
	return nil
}

// Get retrieves a schema by tool name.
func (r *Registry) Get(name string) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[name]
	if !exists {
		return Schema{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return schema, nil
}

// List returns all registered schemas, sorted by name.
func (r *Registry) List() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]Schema, 0, len(r.schemas))
	for _, schema := range r.schemas {
		schemas = append(schemas, schema)
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})

	return schemas
}
