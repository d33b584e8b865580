// Package componentmodel provides the base plugin every component rule
// depends on. It declares the `components` and `binaries` nodes and the rule
// that populates `components` from the loaded model files.
package componentmodel

import (
	"context"
	"fmt"

	"github.com/vk/modelgrid/internal/config"
	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/project"
	"github.com/vk/modelgrid/internal/registry"
)

const descriptor = "componentmodel.BasePlugin"

// BasePlugin creates the `components` and `binaries` nodes.
type BasePlugin struct{}

func (BasePlugin) Token() plugin.Token {
	return plugin.ComponentModelBase
}

// Apply declares both nodes. Creators run at realization, so binary types
// registered by plugins applied later are still installed.
func (BasePlugin) Apply(ctx context.Context, p *project.Project) error {
	err := p.Registry.Create(modelpath.Components, descriptor, func(context.Context) (any, error) {
		return container.NewComponents(), nil
	})
	if err != nil {
		return err
	}

	err = p.Registry.Create(modelpath.Binaries, descriptor, func(ctx context.Context) (any, error) {
		binaries := container.NewBinaries()
		p.Types.InstallBinaryFactories(binaries)
		ctxlog.FromContext(ctx).Debug("Created binaries container.", "knownTypes", len(binaries.KnownTypes()))
		return binaries, nil
	})
	if err != nil {
		return err
	}
	return nil
}

// ComponentsFrom returns the rule that instantiates every component declared
// in m, in declaration order, using the component types registered in types.
func ComponentsFrom(m *config.Model, types *project.Types) registry.MutationRule {
	return &registry.RuleFunc{
		Desc:   "componentmodel.ComponentsFrom(model)",
		Target: registry.Ref[*container.Components](modelpath.Components),
		Fn: func(ctx context.Context, subject any, _ registry.Inputs) error {
			components := subject.(*container.Components)
			logger := ctxlog.FromContext(ctx)
			for _, decl := range m.Components {
				comp, err := types.NewComponent(decl)
				if err != nil {
					return fmt.Errorf("%s: %w", decl.DeclaredAt, err)
				}
				if err := components.Add(comp); err != nil {
					return fmt.Errorf("%s: %w", decl.DeclaredAt, err)
				}
				logger.Debug("Created component.", "component", decl.Name, "type", decl.Type)
			}
			return nil
		},
	}
}
