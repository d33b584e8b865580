// Package registry provides the model graph: a set of nodes addressed by
// model path, each created lazily and then mutated by the rules registered
// against it.
//
// Nodes are declared with Create and targeted by rules with Mutate. Nothing
// runs until a node is realized: realizing a node first realizes every input
// of every rule targeting it, then creates the node's instance and applies
// its rules in registration order. A realized node is never mutated again.
//
// Validate checks, before anything is realized, that every rule subject and
// input refers to a declared node and that rule inputs do not form a cycle.
package registry
