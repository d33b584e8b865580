package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/modelgrid/internal/app"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// MODELGRID_LOG_LEVEL.
const EnvPrefix = "MODELGRID"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var config *app.Config
	cmd := NewRootCommand(viper.New(), output, func(cfg *app.Config) {
		config = cfg
	})
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError("%s", err.Error())
	}
	if config == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// NewRootCommand builds the root command. Flags are bound to v, so each can
// also be set through MODELGRID_* environment variables or a config file.
// onConfig receives the validated configuration; it is not called when the
// command only prints help.
func NewRootCommand(v *viper.Viper, output io.Writer, onConfig func(*app.Config)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modelgrid [flags] [MODEL_PATH...]",
		Short: "Bind component binary rules and realize a component model.",
		Long: `modelgrid - declarative component model with rule-driven binaries.

Arguments:
  MODEL_PATH
    Path to a single .hcl file or a directory containing .hcl files.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringSliceP("model", "m", nil, "Path to a model file or directory. May be repeated.")
	flags.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringP("output", "o", app.OutputYAML, "Report format. Options: 'yaml' or 'json'.")
	flags.String("config", "", "Path to a config file setting any of the flags above.")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if file := v.GetString("config"); file != "" {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return usageError("failed to read config file %s: %v", file, err)
			}
			slog.Debug("Config file loaded.", "path", v.ConfigFileUsed())
		}
		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		paths := append(v.GetStringSlice("model"), args...)
		slog.Debug("Model paths determined.", "paths", paths)
		if len(paths) == 0 {
			slog.Debug("No model path provided, printing usage and exiting.")
			return cmd.Usage()
		}

		logFormat := strings.ToLower(v.GetString("log-format"))
		if logFormat != "text" && logFormat != "json" {
			return usageError("invalid log-format: must be 'text' or 'json'")
		}

		logLevel := strings.ToLower(v.GetString("log-level"))
		switch logLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
		slog.Debug("CLI parameter validation complete.")

		config, err := app.NewConfig(app.Config{
			ModelPaths: paths,
			LogFormat:  logFormat,
			LogLevel:   logLevel,
			Output:     strings.ToLower(v.GetString("output")),
		})
		if err != nil {
			return usageError("%s", err.Error())
		}
		onConfig(config)
		return nil
	}
	return cmd
}
