package rules

import (
	"reflect"
	"strings"

	"github.com/vk/modelgrid/internal/capability"
	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

var (
	builderParamType = modeltype.TypeOf[builderParam]()
	componentType    = modeltype.TypeOf[model.Component]()
	errorType        = modeltype.TypeOf[error]()
)

// binding is what validation learns about a rule.
type binding struct {
	ownerType    modeltype.Type
	itemType     modeltype.Type
	builderIndex int
	ownerIndex   int
	builderType  reflect.Type
}

// validate checks decl's signature and that the component type it takes
// declares the capability to produce the binary type its builder creates.
func validate(decl *Declaration, caps *capability.Table) (binding, error) {
	b := binding{builderIndex: -1, ownerIndex: -1}

	if !decl.isFunc() {
		return b, signatureErrorf("must be a function. Found %s.", describeValue(decl.fn))
	}
	if decl.fn.Type().IsVariadic() {
		return b, signatureErrorf("must not be variadic.")
	}

	results := decl.Results()
	if len(results) > 1 || (len(results) == 1 && results[0] != errorType) {
		return b, signatureErrorf("must return nothing or an error. Found results (%s).", joinNames(results))
	}

	var builders, owners, others []int
	for i, p := range decl.Params() {
		switch {
		case p.Implements(builderParamType):
			builders = append(builders, i)
		case p.AssignableTo(componentType):
			owners = append(owners, i)
		default:
			others = append(others, i)
		}
	}

	switch len(builders) {
	case 0:
		return b, signatureErrorf("must have one parameter of type Builder. Found no parameter of type Builder.")
	case 1:
	default:
		return b, signatureErrorf("must have one parameter of type Builder. Found %d parameters of type Builder.", len(builders))
	}
	if len(others) > 0 {
		p := decl.Params()[others[0]]
		return b, signatureErrorf("parameter %d of type %s is neither a Builder nor a Component.", others[0]+1, p.Name())
	}
	switch len(owners) {
	case 0:
		return b, signatureErrorf("must have one parameter implementing Component. Found no parameter implementing Component.")
	case 1:
	default:
		return b, signatureErrorf("must have one parameter implementing Component. Found %d parameters implementing Component.", len(owners))
	}

	b.builderIndex = builders[0]
	b.ownerIndex = owners[0]
	b.builderType = decl.Params()[b.builderIndex].Reflect()
	b.ownerType = decl.Params()[b.ownerIndex]
	b.itemType = reflect.Zero(b.builderType).Interface().(builderParam).ItemType()

	if !caps.Supports(b.ownerType, b.itemType) {
		return b, &CompatibilityError{Owner: b.ownerType, Item: b.itemType}
	}
	return b, nil
}

func describeValue(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	if v.Kind() == reflect.Func {
		return "nil function"
	}
	return v.Type().String()
}

func joinNames(ts []modeltype.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
