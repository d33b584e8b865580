// Package config defines the format-agnostic model of a configuration pass:
// the components users declare in model files, along with the Loader
// interface that reads them.
//
// Concrete loaders, such as the HCL one, live in separate packages.
package config
