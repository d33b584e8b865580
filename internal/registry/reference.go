package registry

import (
	"fmt"

	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/modeltype"
)

// Reference addresses a node and states the type its instance must have.
// A zero Type accepts any instance.
type Reference struct {
	Path modelpath.Path
	Type modeltype.Type
}

// Ref builds a typed reference to path.
func Ref[T any](path modelpath.Path) Reference {
	return Reference{Path: path, Type: modeltype.TypeOf[T]()}
}

func (r Reference) String() string {
	if !r.Type.IsValid() {
		return r.Path.String()
	}
	return fmt.Sprintf("%s (%s)", r.Path, r.Type.Name())
}

// accepts reports whether instance satisfies the reference type.
func (r Reference) accepts(instance any) bool {
	if !r.Type.IsValid() {
		return true
	}
	return modeltype.OfValue(instance).AssignableTo(r.Type)
}

// Inputs carries the realized instances of a rule's input references, in
// the order the rule declared them.
type Inputs struct {
	refs   []Reference
	values []any
}

// Len is the number of inputs.
func (in Inputs) Len() int {
	return len(in.values)
}

// Get returns the instance of input i.
func (in Inputs) Get(i int) any {
	return in.values[i]
}

// Input returns input i as a T.
func Input[T any](in Inputs, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(in.values) {
		return zero, fmt.Errorf("input %d out of range (rule has %d inputs)", i, len(in.values))
	}
	v, ok := in.values[i].(T)
	if !ok {
		return zero, fmt.Errorf("input %d (%s) is %T, not %s", i, in.refs[i].Path, in.values[i], modeltype.TypeOf[T]().Name())
	}
	return v, nil
}
