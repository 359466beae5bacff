package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/expgrid/internal/builder"
	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/vk/expgrid/internal/hcl_adapter"
	"github.com/vk/expgrid/internal/plan"
	"github.com/vk/expgrid/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	config *Config
}

// DefaultLoader reads both HCL and YAML experiment files.
func DefaultLoader() config.Loader {
	return config.Chain{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
}

// NewApp is the constructor for the main application. The plan is written to
// outW and logs to logW. A nil loader selects DefaultLoader.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	if loader == nil {
		loader = DefaultLoader()
	}
	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: cfg,
	}
}

// Run loads the experiment files, builds the graph and writes its plan.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.GridPaths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Info("Experiments loaded.", "count", len(model.Experiments))

	graph, err := builder.Build(ctx, model, builder.Options{Seed: a.config.Seed})
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	p, err := plan.New(graph)
	if err != nil {
		a.logger.Error("Planning failed.", "error", err)
		return fmt.Errorf("failed to plan: %w", err)
	}
	a.logger.Info("Plan ready.", "steps", len(p.Steps), "levels", len(p.Levels))

	if err := p.Render(a.outW, plan.Format(a.config.Format)); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
