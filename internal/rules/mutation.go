package rules

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/modeltype"
	"github.com/vk/modelgrid/internal/registry"
)

// State is the lifecycle position of a ComponentBinariesRule.
type State int32

const (
	StatePending State = iota
	StateResolving
	StateInvoking
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolving:
		return "resolving"
	case StateInvoking:
		return "invoking"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ComponentBinariesRule runs a validated declaration once for every
// component of its owner type when the binaries node is realized.
type ComponentBinariesRule struct {
	decl    *Declaration
	binding binding
	state   atomic.Int32
}

func newComponentBinariesRule(decl *Declaration, b binding) *ComponentBinariesRule {
	return &ComponentBinariesRule{decl: decl, binding: b}
}

func (r *ComponentBinariesRule) Descriptor() string {
	return r.decl.Descriptor()
}

func (r *ComponentBinariesRule) Subject() registry.Reference {
	return registry.Ref[*container.Binaries](modelpath.Binaries)
}

// Inputs is the container of all components, whatever their type.
func (r *ComponentBinariesRule) Inputs() []registry.Reference {
	return []registry.Reference{registry.Ref[*container.Components](modelpath.Components)}
}

// OwnerType is the component type the rule is invoked for.
func (r *ComponentBinariesRule) OwnerType() modeltype.Type {
	return r.binding.ownerType
}

// ItemType is the binary type the rule's builder creates.
func (r *ComponentBinariesRule) ItemType() modeltype.Type {
	return r.binding.itemType
}

// State reports where the rule is in its lifecycle.
func (r *ComponentBinariesRule) State() State {
	return State(r.state.Load())
}

// ResolvingInputs moves a pending rule to StateResolving.
func (r *ComponentBinariesRule) ResolvingInputs() {
	r.state.CompareAndSwap(int32(StatePending), int32(StateResolving))
}

// Mutate invokes the declaration for each matching component, in container
// order. The first error stops the rule; binaries already created stay.
func (r *ComponentBinariesRule) Mutate(ctx context.Context, subject any, inputs registry.Inputs) error {
	if !r.begin() {
		return fmt.Errorf("%s: %w", r.Descriptor(), ErrRuleAlreadyApplied)
	}
	defer r.state.Store(int32(StateDone))

	binaries, ok := subject.(*container.Binaries)
	if !ok {
		return fmt.Errorf("subject is %T, not %s: %w", subject, modeltype.TypeOf[*container.Binaries]().Name(), registry.ErrTypeMismatch)
	}
	components, err := registry.Input[*container.Components](inputs, 0)
	if err != nil {
		return err
	}

	for _, c := range components.All() {
		if !modeltype.OfValue(c).AssignableTo(r.binding.ownerType) {
			continue
		}
		if err := r.invokeFor(ctx, binaries, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *ComponentBinariesRule) begin() bool {
	for {
		s := r.state.Load()
		if State(s) == StateInvoking || State(s) == StateDone {
			return false
		}
		if r.state.CompareAndSwap(s, int32(StateInvoking)) {
			return true
		}
	}
}

func (r *ComponentBinariesRule) invokeFor(ctx context.Context, binaries *container.Binaries, owner model.Component) error {
	scope := newScope(ctx, owner, binaries)
	defer scope.close()

	builder := reflect.New(r.binding.builderType.Elem())
	builder.Interface().(builderParam).bind(scope)

	args := make([]reflect.Value, 2)
	args[r.binding.builderIndex] = builder
	args[r.binding.ownerIndex] = reflect.ValueOf(owner)
	return r.decl.invoke(args)
}
