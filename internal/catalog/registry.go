package catalog

import (
	"fmt"
	"sort"
	"strconv"
)

// protectedNames are core attributes that cannot be removed from the registry.
var protectedNames = map[string]bool{
	"work_type": true,
	"district":  true,
	"language":  true,
}

// Registry holds the in-memory attribute catalog. It performs no I/O and no
// locking of its own; callers sharing a Registry across concurrent requests
// must serialize mutations against lookups.
type Registry struct {
	attrs map[string]Definition
}

// NewRegistry creates a registry populated with the built-in attribute catalog.
func NewRegistry() *Registry {
	return &Registry{attrs: builtinCatalog()}
}

// NewEmptyRegistry creates a registry with no attributes.
func NewEmptyRegistry() *Registry {
	return &Registry{attrs: make(map[string]Definition)}
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.attrs[name]
	return def, ok
}

// GetAll returns a copy of all registered definitions keyed by name.
func (r *Registry) GetAll() map[string]Definition {
	out := make(map[string]Definition, len(r.attrs))
	for name, def := range r.attrs {
		out[name] = def
	}
	return out
}

// GetByCategory returns the definitions whose category matches exactly.
func (r *Registry) GetByCategory(category Category) map[string]Definition {
	out := make(map[string]Definition)
	for name, def := range r.attrs {
		if def.Category == category {
			out[name] = def
		}
	}
	return out
}

// Names returns all attribute names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.attrs))
	for name := range r.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered attributes.
func (r *Registry) Len() int {
	return len(r.attrs)
}

// Add registers a new attribute definition.
func (r *Registry) Add(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := r.attrs[def.Name]; exists {
		return fmt.Errorf("attribute already exists: %s", def.Name)
	}
	r.attrs[def.Name] = def
	return nil
}

// Update replaces the definition registered under name.
func (r *Registry) Update(name string, def Definition) error {
	if _, exists := r.attrs[name]; !exists {
		return &NotFoundError{Name: name}
	}
	if def.Name != name {
		return fmt.Errorf("attribute name mismatch: %s vs %s", name, def.Name)
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.attrs[name] = def
	return nil
}

// Remove deletes the definition registered under name. Core attributes
// (work_type, district, language) are protected and cannot be removed.
func (r *Registry) Remove(name string) error {
	if _, exists := r.attrs[name]; !exists {
		return &NotFoundError{Name: name}
	}
	if protectedNames[name] {
		return &ProtectedAttributeError{Name: name}
	}
	delete(r.attrs, name)
	return nil
}

// Validate reports whether value is acceptable for the named attribute.
// Categorical values must be members of the attribute's possible values;
// numeric values must lie within [MinValue, MaxValue]. Unknown attribute
// names and unconvertible numeric values are invalid.
func (r *Registry) Validate(name string, value any) bool {
	def, ok := r.attrs[name]
	if !ok {
		return false
	}
	switch def.Kind {
	case KindCategorical:
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, v := range def.PossibleValues {
			if v == s {
				return true
			}
		}
		return false
	case KindNumeric:
		f, ok := toFloat(value)
		if !ok {
			return false
		}
		return f >= def.MinValue && f <= def.MaxValue
	}
	return false
}

// toFloat converts the scalar shapes a preference value can arrive in
// (JSON numbers, strings, ints) to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
