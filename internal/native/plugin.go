package native

import (
	"context"

	"github.com/vk/modelgrid/internal/capability"
	"github.com/vk/modelgrid/internal/modeltype"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/project"
)

// Token identifies the native plugin.
const Token plugin.Token = "native"

// Plugin registers the native component and binary types.
type Plugin struct{}

func (Plugin) Token() plugin.Token { return Token }

func (Plugin) Requires() []plugin.Token {
	return []plugin.Token{plugin.ComponentModelBase}
}

func (Plugin) Apply(_ context.Context, p *project.Project) error {
	project.RegisterComponent(p.Types, "library", libraryFromConfig)
	project.RegisterComponent(p.Types, "executable", executableFromConfig)

	project.RegisterBinary(p.Types, NewSharedLibrary)
	project.RegisterBinary(p.Types, NewStaticLibrary)
	project.RegisterBinary(p.Types, NewExecutableBinary)

	capability.Declare[*Library](p.Capabilities, modeltype.TypeOf[*SharedLibrary](), modeltype.TypeOf[*StaticLibrary]())
	capability.Declare[*Executable](p.Capabilities, modeltype.TypeOf[*ExecutableBinary]())
	return nil
}
