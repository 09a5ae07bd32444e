package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// CustomName is the registry key of the editable layout.
const CustomName = "Custom"

// Preset is a named layout.
type Preset struct {
	Name   string
	Config Config
}

// Presets returns the built-in layouts in display order.
func Presets() []Preset {
	return []Preset{
		{Name: "Class 1 — 5 rows × 3 banks × 2 seats", Config: Regular{Rows: 5, Banks: 3, Seats: 2, Orient: Portrait}},
		{Name: "Class 2 — 4 rows × 4 banks × 2 seats", Config: Regular{Rows: 4, Banks: 4, Seats: 2, Orient: Landscape}},
		{Name: "Lab T117 — 4 rows × 2 banks × 4 seats", Config: Regular{Rows: 4, Banks: 2, Seats: 4, Orient: Landscape}},
		{Name: "Physics T121 — 4 centered, then 3×3 banks of 3", Config: Irregular{
			Pattern: [][]int{{4}, {3, 3, 3}, {3, 3, 3}, {3, 3, 3}},
			Orient:  Landscape,
		}},
	}
}

// DefaultCustom is the custom entry a new registry starts with.
func DefaultCustom() Regular {
	return Regular{Rows: 4, Banks: 3, Seats: 2, Orient: Portrait}
}

// Registry is an ordered set of named layouts with one editable entry.
// The zero value is not usable; use [NewRegistry].
type Registry struct {
	names   []string
	configs map[string]Config
}

// NewRegistry returns a registry populated with [Presets] followed by the
// custom entry.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]Config)}
	for _, p := range Presets() {
		r.names = append(r.names, p.Name)
		r.configs[p.Name] = p.Config
	}
	r.names = append(r.names, CustomName)
	r.configs[CustomName] = DefaultCustom()
	return r
}

// Names returns layout names in display order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Get returns the layout registered under name.
func (r *Registry) Get(name string) (Config, bool) {
	c, ok := r.configs[name]
	return c, ok
}

// Lookup is like Get but returns a NOT_FOUND error for unknown names.
func (r *Registry) Lookup(name string) (Config, error) {
	if c, ok := r.configs[name]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown layout %q", name)
}

// Add registers a named layout after validating it. Adding an existing name
// replaces its configuration in place; the custom entry stays last.
func (r *Registry) Add(name string, cfg Config) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidName, "layout name is empty")
	}
	if name == CustomName {
		return r.SetCustom(cfg)
	}
	if _, err := Resolve(cfg); err != nil {
		return fmt.Errorf("layout %q: %w", name, err)
	}
	if _, ok := r.configs[name]; !ok {
		at := len(r.names) - 1
		r.names = slices.Insert(r.names, at, name)
	}
	r.configs[name] = cfg
	return nil
}

// SetCustom replaces the custom entry. On a validation error the previous
// custom layout is retained.
func (r *Registry) SetCustom(cfg Config) error {
	if _, err := Resolve(cfg); err != nil {
		return err
	}
	if irr, ok := cfg.(Irregular); ok {
		cfg = irr.Clone()
	}
	r.configs[CustomName] = cfg
	return nil
}

// Custom returns the current custom layout.
func (r *Registry) Custom() Config {
	return r.configs[CustomName]
}
