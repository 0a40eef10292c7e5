package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Snapshot is the serialized form of a registry. The registry itself never
// persists anything; collaborators that want catalog changes to survive a
// restart export a snapshot and import it on the next start.
type Snapshot struct {
	Attributes []Definition `json:"attributes"`
}

// Export serializes the registry contents as an indented JSON snapshot with
// attributes sorted by name.
func (r *Registry) Export() ([]byte, error) {
	snap := Snapshot{Attributes: make([]Definition, 0, len(r.attrs))}
	for _, name := range r.Names() {
		snap.Attributes = append(snap.Attributes, r.attrs[name])
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the registry contents with the attributes from a JSON
// snapshot. Every definition must validate and the snapshot must contain
// the protected core attributes; on any error the registry is unchanged.
func (r *Registry) Import(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	attrs := make(map[string]Definition, len(snap.Attributes))
	for _, def := range snap.Attributes {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("invalid snapshot: %w", err)
		}
		if _, dup := attrs[def.Name]; dup {
			return fmt.Errorf("invalid snapshot: duplicate attribute %s", def.Name)
		}
		attrs[def.Name] = def
	}
	for name := range protectedNames {
		if _, ok := attrs[name]; !ok {
			return fmt.Errorf("invalid snapshot: missing protected attribute %s", name)
		}
	}

	r.attrs = attrs
	return nil
}

// Stats summarizes the registry contents for the admin dashboard.
type Stats struct {
	Total      int              `json:"total_attributes"`
	ByCategory map[Category]int `json:"by_category"`
	ByPolarity map[Polarity]int `json:"by_polarity"`
}

// Stats returns attribute counts grouped by category and polarity.
func (r *Registry) Stats() Stats {
	stats := Stats{
		Total:      len(r.attrs),
		ByCategory: make(map[Category]int),
		ByPolarity: make(map[Polarity]int),
	}
	for _, def := range r.attrs {
		stats.ByCategory[def.Category]++
		stats.ByPolarity[def.Polarity]++
	}
	return stats
}

// sortDefinitions orders definitions by name for stable listings.
func sortDefinitions(defs []Definition) {
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
}

// List returns all definitions sorted by name.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.attrs))
	for _, def := range r.attrs {
		defs = append(defs, def)
	}
	sortDefinitions(defs)
	return defs
}
