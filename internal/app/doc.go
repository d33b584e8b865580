// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the configuration pass lifecycle: loading
// model files, applying plugins, binding rules and realizing the model,
// decoupled from any specific entrypoint like a CLI.
package app
