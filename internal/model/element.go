package model

// Named is implemented by every element stored in a container.
type Named interface {
	Name() string
}

// Binary is a buildable output produced on behalf of a component.
type Binary interface {
	Named
	DisplayName() string
}

// Component is a configuration entity able to own binaries.
type Component interface {
	Named
	DisplayName() string
	// Binaries is the component's private, ordered set of owned binaries.
	Binaries() *BinarySet
}

// BaseBinary carries the name shared by every binary implementation.
type BaseBinary struct {
	name string
}

// NewBaseBinary creates the embeddable base for a binary named name.
func NewBaseBinary(name string) BaseBinary {
	return BaseBinary{name: name}
}

func (b *BaseBinary) Name() string { return b.name }

// BaseComponent carries the name and owned binaries of a component.
type BaseComponent struct {
	name        string
	description string
	binaries    BinarySet
}

// NewBaseComponent creates the embeddable base for a component named name.
func NewBaseComponent(name, description string) BaseComponent {
	return BaseComponent{name: name, description: description}
}

func (c *BaseComponent) Name() string         { return c.name }
func (c *BaseComponent) Description() string  { return c.description }
func (c *BaseComponent) Binaries() *BinarySet { return &c.binaries }
