package native

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/modelgrid/internal/config"
	"github.com/vk/modelgrid/internal/model"
)

// DefaultTarget is used by components that declare no targets.
const DefaultTarget = "host"

const (
	LinkageShared = "shared"
	LinkageStatic = "static"
)

type targeted struct {
	targets []string
}

// Targets lists the platforms the component is built for.
func (t *targeted) Targets() []string {
	return slices.Clone(t.targets)
}

// Library is a native library, built with a shared and/or static linkage.
type Library struct {
	model.BaseComponent
	targeted
	linkages []string
}

func (l *Library) DisplayName() string { return fmt.Sprintf("native library '%s'", l.Name()) }

// Linkages lists the linkages built for each target.
func (l *Library) Linkages() []string {
	return slices.Clone(l.linkages)
}

// Builds reports whether linkage is built.
func (l *Library) Builds(linkage string) bool {
	return slices.Contains(l.linkages, linkage)
}

// NewLibrary creates a library. Nil targets select DefaultTarget and nil
// linkages select both.
func NewLibrary(name, description string, targets, linkages []string) *Library {
	if len(targets) == 0 {
		targets = []string{DefaultTarget}
	}
	if len(linkages) == 0 {
		linkages = []string{LinkageShared, LinkageStatic}
	}
	return &Library{
		BaseComponent: model.NewBaseComponent(name, description),
		targeted:      targeted{targets: slices.Clone(targets)},
		linkages:      slices.Clone(linkages),
	}
}

// Executable is a native program.
type Executable struct {
	model.BaseComponent
	targeted
}

func (e *Executable) DisplayName() string { return fmt.Sprintf("native executable '%s'", e.Name()) }

// NewExecutable creates an executable. Nil targets select DefaultTarget.
func NewExecutable(name, description string, targets []string) *Executable {
	if len(targets) == 0 {
		targets = []string{DefaultTarget}
	}
	return &Executable{
		BaseComponent: model.NewBaseComponent(name, description),
		targeted:      targeted{targets: slices.Clone(targets)},
	}
}

func libraryFromConfig(decl *config.Component) (*Library, error) {
	var linkages []string
	if v, ok := decl.Attributes["linkages"]; ok {
		if err := gocty.FromCtyValue(v, &linkages); err != nil {
			return nil, fmt.Errorf("attribute \"linkages\": %w", err)
		}
		for _, l := range linkages {
			if l != LinkageShared && l != LinkageStatic {
				return nil, fmt.Errorf("attribute \"linkages\": unknown linkage %q, expected %q or %q", l, LinkageShared, LinkageStatic)
			}
		}
	}
	if err := rejectUnknown(decl, "linkages"); err != nil {
		return nil, err
	}
	return NewLibrary(decl.Name, decl.Description, decl.Targets, linkages), nil
}

func executableFromConfig(decl *config.Component) (*Executable, error) {
	if err := rejectUnknown(decl); err != nil {
		return nil, err
	}
	return NewExecutable(decl.Name, decl.Description, decl.Targets), nil
}

func rejectUnknown(decl *config.Component, allowed ...string) error {
	for _, name := range slices.Sorted(maps.Keys(decl.Attributes)) {
		if slices.Contains(allowed, name) {
			continue
		}
		return fmt.Errorf("unsupported attribute %q (%s)", name, decl.Attributes[name].Type().FriendlyName())
	}
	return nil
}
