package project

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vk/modelgrid/internal/config"
	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

// ComponentFactory builds a component from its declaration in a model file.
type ComponentFactory func(decl *config.Component) (model.Component, error)

type componentType struct {
	label string
	typ   modeltype.Type
	fn    ComponentFactory
}

type binaryType struct {
	typ modeltype.Type
	fn  func(name string) model.Binary
}

// Types records the component and binary types plugins make available.
// Registering the same label or type twice panics.
type Types struct {
	mu         sync.RWMutex
	components []componentType
	binaries   []binaryType
}

// NewTypes creates an empty type registry.
func NewTypes() *Types {
	return &Types{}
}

// RegisterComponent makes components of typ declarable under label.
func (t *Types) RegisterComponent(label string, typ modeltype.Type, fn ComponentFactory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.components {
		if c.label == label {
			panic(fmt.Sprintf("component type label %q already registered for %s", label, c.typ))
		}
	}
	t.components = append(t.components, componentType{label: label, typ: typ, fn: fn})
}

// RegisterComponent is the typed form of Types.RegisterComponent.
func RegisterComponent[C model.Component](t *Types, label string, fn func(decl *config.Component) (C, error)) {
	t.RegisterComponent(label, modeltype.TypeOf[C](), func(decl *config.Component) (model.Component, error) {
		return fn(decl)
	})
}

// RegisterBinary makes binaries of type B creatable in the binaries container.
func RegisterBinary[B model.Binary](t *Types, fn func(name string) B) {
	typ := modeltype.TypeOf[B]()
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.binaries {
		if b.typ == typ {
			panic(fmt.Sprintf("binary type %s already registered", typ))
		}
	}
	t.binaries = append(t.binaries, binaryType{typ: typ, fn: func(name string) model.Binary { return fn(name) }})
}

// NewComponent builds the component declared by decl.
func (t *Types) NewComponent(decl *config.Component) (model.Component, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.components {
		if c.label == decl.Type {
			comp, err := c.fn(decl)
			if err != nil {
				return nil, fmt.Errorf("component %q of type %q: %w", decl.Name, decl.Type, err)
			}
			return comp, nil
		}
	}
	return nil, fmt.Errorf("component %q declares unknown type %q (known types: %v)", decl.Name, decl.Type, t.componentLabels())
}

// ComponentLabels lists the registered component type labels, sorted.
func (t *Types) ComponentLabels() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.componentLabels()
}

func (t *Types) componentLabels() []string {
	labels := make([]string, len(t.components))
	for i, c := range t.components {
		labels[i] = c.label
	}
	slices.Sort(labels)
	return labels
}

// InstallBinaryFactories registers every known binary type with c.
func (t *Types) InstallBinaryFactories(c *container.Binaries) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, b := range t.binaries {
		c.RegisterFactory(b.typ, b.fn)
	}
}
