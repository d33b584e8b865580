/*
Package modelpath provides the structured address of a node in the model
graph, based on the canonical format `path`.

The format is a dot-separated sequence of segments, e.g. `components`,
`binaries` or `components.core.targets[1]`.

A Path is immutable once created: every method that derives a new path
returns a fresh value and never shares its segment slice with the receiver.
*/
package modelpath
