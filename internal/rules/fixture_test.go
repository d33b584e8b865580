package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelgrid/internal/capability"
	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/modeltype"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/registry"
)

type linkable interface {
	model.Binary
	Linkage() string
}

type sharedObject struct{ model.BaseBinary }

func (b *sharedObject) DisplayName() string { return "shared object '" + b.Name() + "'" }
func (b *sharedObject) Linkage() string     { return "shared" }

type staticObject struct{ model.BaseBinary }

func (b *staticObject) DisplayName() string { return "static object '" + b.Name() + "'" }
func (b *staticObject) Linkage() string     { return "static" }

type jarBinary struct{ model.BaseBinary }

func (b *jarBinary) DisplayName() string { return "jar '" + b.Name() + "'" }

type library struct{ model.BaseComponent }

func (c *library) DisplayName() string { return "library '" + c.Name() + "'" }

type application struct{ model.BaseComponent }

func (c *application) DisplayName() string { return "application '" + c.Name() + "'" }

type plainComponent struct{ model.BaseComponent }

func (c *plainComponent) DisplayName() string { return "component '" + c.Name() + "'" }

func newLibrary(name string) *library {
	return &library{model.NewBaseComponent(name, "")}
}

func newApplication(name string) *application {
	return &application{model.NewBaseComponent(name, "")}
}

func newCapabilities() *capability.Table {
	caps := capability.NewTable()
	capability.Declare[*library](caps, modeltype.TypeOf[*sharedObject](), modeltype.TypeOf[*staticObject]())
	capability.Declare[*application](caps, modeltype.TypeOf[*jarBinary]())
	return caps
}

// fixture is a registry holding a fixed component container and a binaries
// node able to create every test binary type.
type fixture struct {
	reg        *registry.Registry
	components *container.Components
	binaries   *container.Binaries
	deps       plugin.DependencySet
	handler    *ComponentBinariesHandler
}

func newFixture(t require.TestingT, owners ...model.Component) *fixture {
	f := &fixture{
		reg:        registry.New(nil),
		components: container.NewComponents(),
		handler:    NewComponentBinariesHandler(newCapabilities()),
	}
	for _, o := range owners {
		require.NoError(t, f.components.Add(o))
	}
	require.NoError(t, f.reg.Create(modelpath.Components, "fixture components", func(context.Context) (any, error) {
		return f.components, nil
	}))
	require.NoError(t, f.reg.Create(modelpath.Binaries, "fixture binaries", func(context.Context) (any, error) {
		f.binaries = container.NewBinaries()
		container.Register(f.binaries, func(name string) *sharedObject { return &sharedObject{model.NewBaseBinary(name)} })
		container.Register(f.binaries, func(name string) *staticObject { return &staticObject{model.NewBaseBinary(name)} })
		container.Register(f.binaries, func(name string) *jarBinary { return &jarBinary{model.NewBaseBinary(name)} })
		return f.binaries, nil
	}))
	return f
}

func (f *fixture) register(decl *Declaration) error {
	return f.handler.Register(context.Background(), decl, f.reg, &f.deps)
}

func (f *fixture) realize() error {
	_, err := f.reg.Realize(context.Background(), modelpath.Binaries)
	return err
}

func (f *fixture) rule(t *testing.T, i int) *ComponentBinariesRule {
	t.Helper()
	rules := f.reg.Rules(modelpath.Binaries)
	require.Greater(t, len(rules), i)
	rule, ok := rules[i].(*ComponentBinariesRule)
	require.True(t, ok, "rule %d is %T", i, rules[i])
	return rule
}
