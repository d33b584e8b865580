package native

import (
	"github.com/vk/modelgrid/internal/rules"
)

// Rules returns the stock ComponentBinaries rules of the native model.
func Rules() []*rules.Declaration {
	return []*rules.Declaration{
		rules.Typed("native.Rules#sharedLibraries", sharedLibraries),
		rules.Typed("native.Rules#staticLibraries", staticLibraries),
		rules.Typed("native.Rules#executables", executables),
	}
}

// BinaryName is the per-component name of the binary built for target.
func BinaryName(target, linkage string) string {
	return target + "-" + linkage
}

func sharedLibraries(binaries *rules.Builder[*SharedLibrary], lib *Library) error {
	if !lib.Builds(LinkageShared) {
		return nil
	}
	return createPerTarget(binaries, lib.Targets(), LinkageShared)
}

func staticLibraries(binaries *rules.Builder[*StaticLibrary], lib *Library) error {
	if !lib.Builds(LinkageStatic) {
		return nil
	}
	return createPerTarget(binaries, lib.Targets(), LinkageStatic)
}

func executables(binaries *rules.Builder[*ExecutableBinary], exe *Executable) error {
	return createPerTarget(binaries, exe.Targets(), "exe")
}

func createPerTarget[B Binary](binaries *rules.Builder[B], targets []string, suffix string) error {
	for _, target := range targets {
		b, err := binaries.Create(BinaryName(target, suffix))
		if err != nil {
			return err
		}
		b.SetTarget(target)
	}
	return nil
}
