package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every component
// declared across the loaded model files.
type Model struct {
	// Components are kept in declaration order: files in lexical order,
	// blocks in file order.
	Components []*Component
}

// Component is the format-agnostic representation of a `component` block.
type Component struct {
	Type        string
	Name        string
	Description string
	Targets     []string
	// Attributes holds every other attribute of the block, already evaluated.
	Attributes map[string]cty.Value
	// DeclaredAt is the "file:line" the block starts at.
	DeclaredAt string
}

// Add appends c, rejecting a second component with the same name.
func (m *Model) Add(c *Component) error {
	for _, existing := range m.Components {
		if existing.Name == c.Name {
			return fmt.Errorf("component %q declared at %s is already declared at %s", c.Name, c.DeclaredAt, existing.DeclaredAt)
		}
	}
	m.Components = append(m.Components, c)
	return nil
}

// Names returns component names in declaration order.
func (m *Model) Names() []string {
	out := make([]string, len(m.Components))
	for i, c := range m.Components {
		out[i] = c.Name
	}
	return out
}
