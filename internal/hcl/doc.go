// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, and translating
// `component` blocks into the format-agnostic model.
package hcl
