package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/modelgrid/internal/componentmodel"
	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/registry"
	"github.com/vk/modelgrid/internal/rules"
)

// Run executes one configuration pass: load the model files, apply plugins,
// bind rules, realize the binaries node and write the report.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ModelPaths...)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model loaded.", "components", len(model.Components))

	applier := plugin.NewApplier(a.project, a.plugins...)
	if err := applier.Apply(ctx, a.apply...); err != nil {
		return err
	}

	if err := a.bindRules(ctx, applier); err != nil {
		return err
	}

	reg := a.project.Registry
	if err := reg.Mutate(componentmodel.ComponentsFrom(model, a.project.Types)); err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	binaries, err := registry.Get[*container.Binaries](ctx, reg, modelpath.Binaries)
	if err != nil {
		return fmt.Errorf("failed to realize model: %w", err)
	}
	components, err := registry.Get[*container.Components](ctx, reg, modelpath.Components)
	if err != nil {
		return fmt.Errorf("failed to realize model: %w", err)
	}
	a.logger.Info("Model realized.", "components", components.Len(), "binaries", binaries.Len())

	if err := writeReport(a.outW, a.config.Output, newReport(components, binaries)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// bindRules registers every rule declaration. A rejected declaration does not
// stop the others from being registered; all rejections are reported
// together once every declaration has been seen.
func (a *App) bindRules(ctx context.Context, applier *plugin.Applier) error {
	handler := rules.NewComponentBinariesHandler(a.project.Capabilities)
	var deps plugin.DependencySet
	var rejected []error

	decls := a.declarations()
	for _, decl := range decls {
		err := handler.Register(ctx, decl, a.project.Registry, &deps)
		if err == nil {
			continue
		}
		var invalid *rules.InvalidRuleDeclarationError
		if errors.As(err, &invalid) {
			a.logger.Warn("Rejected model rule.", "rule", invalid.Descriptor, "reason", invalid.Err)
			err = fmt.Errorf("%w %w", invalid, invalid.Err)
		}
		rejected = append(rejected, err)
	}

	if err := applier.Apply(ctx, deps.Tokens()...); err != nil {
		return err
	}
	a.logger.Debug("Model rules bound.", "registered", len(decls)-len(rejected), "rejected", len(rejected))

	if len(rejected) > 0 {
		return fmt.Errorf("invalid model rules:\n%w", errors.Join(rejected...))
	}
	return nil
}
