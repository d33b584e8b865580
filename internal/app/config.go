package app

import (
	"errors"
	"fmt"
	"slices"
)

// Output formats of the model report.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPaths []string // hcl files or directories

	LogFormat string
	LogLevel  string
	Output    string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ModelPaths) == 0 {
		return nil, errors.New("ModelPaths is a required configuration field and cannot be empty")
	}
	if slices.Contains(cfg.ModelPaths, "") {
		return nil, errors.New("ModelPaths must not contain empty paths")
	}

	if cfg.Output == "" {
		cfg.Output = OutputYAML
	}
	if cfg.Output != OutputYAML && cfg.Output != OutputJSON {
		return nil, fmt.Errorf("invalid output %q: must be %q or %q", cfg.Output, OutputYAML, OutputJSON)
	}

	return &cfg, nil
}
