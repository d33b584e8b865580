// Package model defines the two element families the rule engine binds:
// components, which own binaries, and binaries, which are also tracked in the
// flat, global `binaries` container.
//
// Concrete component and binary types embed BaseComponent and BaseBinary and
// are registered with a container by the plugin that defines them.
package model
