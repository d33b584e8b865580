// Package rules binds ComponentBinaries rules into the model registry.
//
// A rule is a function taking a *Builder[B] and a component:
//
//	func(binaries *rules.Builder[*native.SharedLibrary], lib *native.Library) error
//
// Registering it validates the signature once against the producer
// capability table, declares a dependency on the component model plugin and
// adds one ComponentBinariesRule targeting the `binaries` node. When that
// node is realized, the rule is invoked once for every component of the
// declared type, each time with a builder scoped to that component.
package rules
