package rules

import (
	"context"
	"fmt"

	"github.com/vk/modelgrid/internal/capability"
	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/registry"
)

// MutationRegistry is the part of the model registry rules are added to.
type MutationRegistry interface {
	Mutate(rule registry.MutationRule) error
}

// ComponentBinariesHandler registers ComponentBinaries rules.
type ComponentBinariesHandler struct {
	caps *capability.Table
}

// NewComponentBinariesHandler creates a handler validating rules against caps.
func NewComponentBinariesHandler(caps *capability.Table) *ComponentBinariesHandler {
	return &ComponentBinariesHandler{caps: caps}
}

// Register validates decl and adds one ComponentBinariesRule targeting the
// binaries node to reg. A declaration that fails validation is rejected with
// an *InvalidRuleDeclarationError and nothing is registered.
func (h *ComponentBinariesHandler) Register(ctx context.Context, decl *Declaration, reg MutationRegistry, deps plugin.Dependencies) error {
	b, err := validate(decl, h.caps)
	if err != nil {
		return &InvalidRuleDeclarationError{Descriptor: decl.Descriptor(), Err: err}
	}

	deps.Require(plugin.ComponentModelBase)

	rule := newComponentBinariesRule(decl, b)
	if err := reg.Mutate(rule); err != nil {
		return fmt.Errorf("registering %s: %w", decl.Descriptor(), err)
	}
	ctxlog.FromContext(ctx).Debug("Registered ComponentBinaries rule.",
		"rule", decl.Descriptor(),
		"component", b.ownerType.Name(),
		"binary", b.itemType.Name(),
	)
	return nil
}
