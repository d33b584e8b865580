package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/modelgrid/internal/componentmodel"
	"github.com/vk/modelgrid/internal/config"
	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/native"
	"github.com/vk/modelgrid/internal/plugin"
	"github.com/vk/modelgrid/internal/project"
	"github.com/vk/modelgrid/internal/rules"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	project *project.Project

	plugins     []plugin.Plugin
	apply       []plugin.Token
	rules       []*rules.Declaration
	nativeRules bool
}

// Option customizes an App.
type Option func(*App)

// WithLogOutput sends logs to w instead of the report writer.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithPlugins offers extra plugins and applies them before rules are bound.
func WithPlugins(plugins ...plugin.Plugin) Option {
	return func(a *App) {
		a.plugins = append(a.plugins, plugins...)
		for _, p := range plugins {
			a.apply = append(a.apply, p.Token())
		}
	}
}

// WithRules adds rule declarations to bind after the stock native rules.
func WithRules(decls ...*rules.Declaration) Option {
	return func(a *App) { a.rules = append(a.rules, decls...) }
}

// WithoutNativeRules drops the stock native rules. The native plugin is
// still applied.
func WithoutNativeRules() Option {
	return func(a *App) { a.nativeRules = false }
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger and project; nothing is loaded until Run,
// which is meant to be called once.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:    outW,
		logW:    outW,
		config:  appConfig,
		loader:  loader,
		project: project.New(nil),
		plugins: []plugin.Plugin{componentmodel.BasePlugin{}, native.Plugin{}},
		apply:   []plugin.Token{native.Token},

		nativeRules: true,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = newLogger(appConfig.LogLevel, appConfig.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")
	return a
}

func (a *App) declarations() []*rules.Declaration {
	if !a.nativeRules {
		return a.rules
	}
	return append(native.Rules(), a.rules...)
}

// Project returns the application's project. This is primarily for testing.
func (a *App) Project() *project.Project {
	return a.project
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
