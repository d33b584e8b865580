package registry

import (
	"errors"
	"fmt"

	"github.com/vk/modelgrid/internal/modelpath"
)

var (
	// ErrUnbound is returned when a reference names a node nobody created.
	ErrUnbound = errors.New("model reference could not be resolved")
	// ErrDuplicateNode is returned when a path is created twice.
	ErrDuplicateNode = errors.New("model node already exists")
	// ErrRealized is returned when a rule targets a node that is already realized.
	ErrRealized = errors.New("model node already realized")
	// ErrCycle is returned when rule inputs depend on each other.
	ErrCycle = errors.New("model rule inputs form a cycle")
	// ErrTypeMismatch is returned when a node instance does not match the
	// type a reference expects.
	ErrTypeMismatch = errors.New("model node has unexpected type")
)

// RuleExecutionError reports a failure raised while a rule was applied.
type RuleExecutionError struct {
	Descriptor string
	Path       modelpath.Path
	Err        error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("exception thrown while executing model rule: %s (on %s): %v", e.Descriptor, e.Path, e.Err)
}

func (e *RuleExecutionError) Unwrap() error {
	return e.Err
}
