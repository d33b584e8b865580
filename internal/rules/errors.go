package rules

import (
	"errors"
	"fmt"

	"github.com/vk/modelgrid/internal/modeltype"
)

// ErrRuleAlreadyApplied is returned when a ComponentBinariesRule is invoked
// after it has run.
var ErrRuleAlreadyApplied = errors.New("ComponentBinaries rule has already been applied")

// ErrIncompatibleType is returned when a builder is asked for a binary type
// that is not its own item type or a subtype of it.
var ErrIncompatibleType = errors.New("binary type is not compatible with the builder")

// InvalidRuleDeclarationError rejects a rule at registration. Err is the
// signature or compatibility problem that caused it.
type InvalidRuleDeclarationError struct {
	Descriptor string
	Err        error
}

func (e *InvalidRuleDeclarationError) Error() string {
	return fmt.Sprintf("%s is not a valid ComponentBinaries model rule method.", e.Descriptor)
}

func (e *InvalidRuleDeclarationError) Unwrap() error {
	return e.Err
}

// SignatureError reports a rule whose parameters or results have the wrong
// shape.
type SignatureError struct {
	Msg string
}

func (e *SignatureError) Error() string {
	return e.Msg
}

func signatureErrorf(format string, args ...any) *SignatureError {
	return &SignatureError{Msg: fmt.Sprintf("ComponentBinaries method "+format, args...)}
}

// CompatibilityError reports a component type that does not declare the
// capability to produce the rule's binary type.
type CompatibilityError struct {
	Owner modeltype.Type
	Item  modeltype.Type
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("ComponentBinaries method parameter of type %s does not support binaries of type %s.", e.Owner.Name(), e.Item.Name())
}
