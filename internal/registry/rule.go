package registry

import (
	"context"
)

// MutationRule is a unit of configuration logic applied to one node when it
// is realized.
type MutationRule interface {
	// Descriptor identifies the rule in diagnostics.
	Descriptor() string
	// Subject is the node the rule mutates.
	Subject() Reference
	// Inputs are realized, in order, before Mutate is called.
	Inputs() []Reference
	// Mutate applies the rule. subject satisfies Subject().Type and every
	// input satisfies the type of its reference.
	Mutate(ctx context.Context, subject any, inputs Inputs) error
}

// InputObserver is implemented by rules that track their own progress. The
// registry calls ResolvingInputs right before it realizes the rule's inputs.
type InputObserver interface {
	ResolvingInputs()
}

// RuleFunc adapts a plain function into a MutationRule.
type RuleFunc struct {
	Desc      string
	Target    Reference
	InputRefs []Reference
	Fn        func(ctx context.Context, subject any, inputs Inputs) error
}

func (r *RuleFunc) Descriptor() string  { return r.Desc }
func (r *RuleFunc) Subject() Reference  { return r.Target }
func (r *RuleFunc) Inputs() []Reference { return r.InputRefs }

func (r *RuleFunc) Mutate(ctx context.Context, subject any, inputs Inputs) error {
	return r.Fn(ctx, subject, inputs)
}
