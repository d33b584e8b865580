package native

import (
	"fmt"

	"github.com/vk/modelgrid/internal/model"
)

// Binary is implemented by every native binary.
type Binary interface {
	model.Binary
	Target() string
	SetTarget(target string)
	Kind() string
}

type nativeBinary struct {
	model.BaseBinary
	target string
}

func (b *nativeBinary) Target() string          { return b.target }
func (b *nativeBinary) SetTarget(target string) { b.target = target }

// SharedLibrary is a dynamically linked library binary.
type SharedLibrary struct{ nativeBinary }

func NewSharedLibrary(name string) *SharedLibrary {
	return &SharedLibrary{nativeBinary{BaseBinary: model.NewBaseBinary(name)}}
}

func (b *SharedLibrary) Kind() string { return "shared library" }
func (b *SharedLibrary) DisplayName() string {
	return fmt.Sprintf("shared library '%s'", b.Name())
}

// StaticLibrary is a statically linked library archive.
type StaticLibrary struct{ nativeBinary }

func NewStaticLibrary(name string) *StaticLibrary {
	return &StaticLibrary{nativeBinary{BaseBinary: model.NewBaseBinary(name)}}
}

func (b *StaticLibrary) Kind() string { return "static library" }
func (b *StaticLibrary) DisplayName() string {
	return fmt.Sprintf("static library '%s'", b.Name())
}

// ExecutableBinary is a linked program.
type ExecutableBinary struct{ nativeBinary }

func NewExecutableBinary(name string) *ExecutableBinary {
	return &ExecutableBinary{nativeBinary{BaseBinary: model.NewBaseBinary(name)}}
}

func (b *ExecutableBinary) Kind() string { return "executable" }
func (b *ExecutableBinary) DisplayName() string {
	return fmt.Sprintf("executable '%s'", b.Name())
}
