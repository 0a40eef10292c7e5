package catalog

import "fmt"

// NotFoundError indicates a registry mutation referenced an unknown attribute.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attribute not found: %s", e.Name)
}

// ProtectedAttributeError indicates an attempt to remove a core attribute.
type ProtectedAttributeError struct {
	Name string
}

func (e *ProtectedAttributeError) Error() string {
	return fmt.Sprintf("attribute is protected and cannot be removed: %s", e.Name)
}
