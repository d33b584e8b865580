// Package container provides the flat, named, insertion-ordered collections
// that live at well-known model paths, such as `components` and `binaries`.
//
// A container is polymorphic: it creates elements through factories
// registered per concrete type, and records the runtime type of every element
// so that type-directed queries (WithType, Filter) work on the stored values.
package container
