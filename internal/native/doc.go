// Package native is the native-code component model: libraries and
// executables built for one or more targets. Its plugin registers the
// component and binary types and their producer capabilities; Rules returns
// the ComponentBinaries rules creating one binary per target and linkage.
package native
