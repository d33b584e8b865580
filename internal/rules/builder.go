package rules

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

// builderParam is implemented by every *Builder[B]. It lets the rule binder
// recognize and bind a builder parameter without knowing B statically.
type builderParam interface {
	ItemType() modeltype.Type
	bind(s *Scope)
}

// Scope is the creation context of one rule invocation for one component.
type Scope struct {
	ctx      context.Context
	owner    model.Component
	binaries *container.Binaries
	closed   atomic.Bool
}

func newScope(ctx context.Context, owner model.Component, binaries *container.Binaries) *Scope {
	return &Scope{ctx: ctx, owner: owner, binaries: binaries}
}

// Owner is the component binaries are created for.
func (s *Scope) Owner() model.Component {
	return s.owner
}

func (s *Scope) close() {
	s.closed.Store(true)
}

// QualifiedName is the name a binary created as name gets in the binaries
// container: "<component>:<name>".
func QualifiedName(owner model.Component, name string) string {
	return owner.Name() + ":" + name
}

// create instantiates typ in the binaries container and links it into the
// owner's set. Both happen under the container lock; if either fails,
// neither collection changes.
func (s *Scope) create(name string, typ modeltype.Type) (model.Binary, error) {
	if s.closed.Load() {
		panic(fmt.Sprintf("binary builder for %s used after its rule invocation finished", s.owner.DisplayName()))
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("creating binary for %s: %w", s.owner.DisplayName(), container.ErrInvalidName)
	}

	qualified := QualifiedName(s.owner, name)
	b, err := s.binaries.CreateLinked(qualified, typ, func(b model.Binary) error {
		return s.owner.Binaries().Add(b)
	})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(s.ctx).Debug("Created binary.", "binary", qualified, "type", typ.Name(), "component", s.owner.Name())
	return b, nil
}

// Builder creates binaries of type B for the single component a rule is
// being invoked for. It is valid only while that invocation runs.
type Builder[B model.Binary] struct {
	scope *Scope
}

func (b *Builder[B]) bind(s *Scope) {
	b.scope = s
}

// ItemType is B. It is safe to call on a nil *Builder.
func (b *Builder[B]) ItemType() modeltype.Type {
	return modeltype.TypeOf[B]()
}

// Owner is the component binaries are created for.
func (b *Builder[B]) Owner() model.Component {
	return b.mustScope().owner
}

// Create creates a binary of type B named "<component>:<name>".
func (b *Builder[B]) Create(name string) (B, error) {
	return b.CreateOf(name, b.ItemType())
}

// CreateOf creates a binary of typ, which must be B or assignable to B.
func (b *Builder[B]) CreateOf(name string, typ modeltype.Type) (B, error) {
	var zero B
	s := b.mustScope()
	if !typ.AssignableTo(b.ItemType()) {
		return zero, fmt.Errorf("cannot create %q as %s for a builder of %s: %w", name, typ.Name(), b.ItemType().Name(), ErrIncompatibleType)
	}
	item, err := s.create(name, typ)
	if err != nil {
		return zero, err
	}
	return item.(B), nil
}

// CreateAs creates a binary of the concrete subtype U of B.
func CreateAs[U, B model.Binary](b *Builder[B], name string) (U, error) {
	var zero U
	item, err := b.CreateOf(name, modeltype.TypeOf[U]())
	if err != nil {
		return zero, err
	}
	return any(item).(U), nil
}

func (b *Builder[B]) mustScope() *Scope {
	if b == nil || b.scope == nil {
		panic("binary builder is not bound to a component")
	}
	return b.scope
}
