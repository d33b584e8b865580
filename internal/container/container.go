package container

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/modeltype"
)

type factory[T model.Named] struct {
	typ modeltype.Type
	fn  func(name string) T
}

type entry[T model.Named] struct {
	item T
	typ  modeltype.Type
}

// Container is a named, insertion-ordered collection of T addressed by a
// model path. All methods are safe for concurrent use.
type Container[T model.Named] struct {
	path modelpath.Path

	mu        sync.RWMutex
	entries   []entry[T]
	index     map[string]int
	factories []factory[T]
}

// Binaries is the flat collection of every binary in the model.
type Binaries = Container[model.Binary]

// Components is the flat collection of every component in the model.
type Components = Container[model.Component]

// New creates an empty container living at path.
func New[T model.Named](path modelpath.Path) *Container[T] {
	return &Container[T]{
		path:  path,
		index: make(map[string]int),
	}
}

// NewBinaries creates the container stored at the `binaries` node.
func NewBinaries() *Binaries {
	return New[model.Binary](modelpath.Binaries)
}

// NewComponents creates the container stored at the `components` node.
func NewComponents() *Components {
	return New[model.Component](modelpath.Components)
}

// Path returns the model path the container lives at.
func (c *Container[T]) Path() modelpath.Path {
	return c.path
}

// RegisterFactory makes typ creatable through Create. typ must be assignable
// to T; registering the same type twice panics.
func (c *Container[T]) RegisterFactory(typ modeltype.Type, fn func(name string) T) {
	if !typ.AssignableTo(modeltype.TypeOf[T]()) {
		panic(fmt.Sprintf("container %s: factory type %s is not assignable to %s", c.path, typ, modeltype.TypeOf[T]()))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.factories {
		if f.typ == typ {
			panic(fmt.Sprintf("container %s: factory for type %s already registered", c.path, typ))
		}
	}
	c.factories = append(c.factories, factory[T]{typ: typ, fn: fn})
}

// Register is the typed form of RegisterFactory.
func Register[T, U model.Named](c *Container[T], fn func(name string) U) {
	c.RegisterFactory(modeltype.TypeOf[U](), func(name string) T {
		return any(fn(name)).(T)
	})
}

// KnownTypes lists the creatable types in registration order.
func (c *Container[T]) KnownTypes() []modeltype.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]modeltype.Type, len(c.factories))
	for i, f := range c.factories {
		out[i] = f.typ
	}
	return out
}

// Create instantiates an element of typ named name and inserts it.
func (c *Container[T]) Create(name string, typ modeltype.Type) (T, error) {
	return c.CreateLinked(name, typ, nil)
}

// CreateLinked instantiates an element of typ named name, passes it to link
// and inserts it only if link succeeds. The whole step runs under the
// container's write lock, so no reader observes the element in the container
// before link has completed, and a failed link leaves the container
// unchanged. link must not call back into the container.
func (c *Container[T]) CreateLinked(name string, typ modeltype.Type, link func(T) error) (T, error) {
	var zero T
	if strings.TrimSpace(name) == "" {
		return zero, fmt.Errorf("container %s: %w", c.path, ErrInvalidName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[name]; exists {
		return zero, fmt.Errorf("cannot create %q in %s: %w", name, c.path, ErrDuplicateName)
	}

	fn, ok := c.factoryFor(typ)
	if !ok {
		return zero, fmt.Errorf("cannot create a %s named %q because this type is not known to %s (known types: %s): %w",
			typ.Name(), name, c.path, strings.Join(c.knownTypeNames(), ", "), ErrUnknownType)
	}

	item := fn(name)
	if link != nil {
		if err := link(item); err != nil {
			return zero, err
		}
	}
	c.insert(item)
	return item, nil
}

// Add inserts an element created elsewhere.
func (c *Container[T]) Add(item T) error {
	if strings.TrimSpace(item.Name()) == "" {
		return fmt.Errorf("container %s: %w", c.path, ErrInvalidName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[item.Name()]; exists {
		return fmt.Errorf("cannot add %q to %s: %w", item.Name(), c.path, ErrDuplicateName)
	}
	c.insert(item)
	return nil
}

// Get returns the element named name.
func (c *Container[T]) Get(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		var zero T
		return zero, false
	}
	return c.entries[i].item, true
}

// TypeOf returns the runtime type recorded for the element named name.
func (c *Container[T]) TypeOf(name string) (modeltype.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return modeltype.Type{}, false
	}
	return c.entries[i].typ, true
}

// All returns the elements in insertion order.
func (c *Container[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.item
	}
	return out
}

// Names returns the element names in insertion order.
func (c *Container[T]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.item.Name()
	}
	return out
}

// Len is the number of elements.
func (c *Container[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Filter returns, in insertion order, the elements whose recorded runtime
// type is assignable to typ.
func (c *Container[T]) Filter(typ modeltype.Type) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, e := range c.entries {
		if e.typ.AssignableTo(typ) {
			out = append(out, e.item)
		}
	}
	return out
}

// WithType returns the elements of c that are of type U, in insertion order.
func WithType[U any, T model.Named](c *Container[T]) []U {
	var out []U
	for _, item := range c.All() {
		if u, ok := any(item).(U); ok {
			out = append(out, u)
		}
	}
	return out
}

func (c *Container[T]) insert(item T) {
	c.index[item.Name()] = len(c.entries)
	c.entries = append(c.entries, entry[T]{item: item, typ: modeltype.OfValue(item)})
}

func (c *Container[T]) factoryFor(typ modeltype.Type) (func(string) T, bool) {
	for _, f := range c.factories {
		if f.typ == typ {
			return f.fn, true
		}
	}
	return nil, false
}

func (c *Container[T]) knownTypeNames() []string {
	names := make([]string, len(c.factories))
	for i, f := range c.factories {
		names[i] = f.typ.Name()
	}
	return names
}
