// Package cli is responsible for parsing command-line arguments, environment
// variables and config files, validating user input, and handling
// process-level concerns like exit codes. It translates them into the
// application's internal configuration.
package cli
