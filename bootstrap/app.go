package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/di"
	"github.com/kbukum/ssot/errors"
	"github.com/kbukum/ssot/logger"
	"github.com/kbukum/ssot/util"
	"github.com/kbukum/ssot/version"
)

// App is an application whose configuration is resolved exactly once, before
// anything else runs.
//
// Example:
//
//	app, err := bootstrap.New(ctx, bootstrap.WithName("billing"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    return serve(ctx, app.Config.StringOr("PORT", "8080"))
//	})
type App struct {
	Name      string
	Version   string
	Config    *config.Resolved
	Store     *config.Store
	Container di.Container
	Logger    *logger.Logger
	Summary   *Summary

	gracefulTimeout time.Duration
	summaryOutput   *summaryOutput

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New resolves the configuration, initializes the logger from it and
// registers both in the DI container. A configuration error is returned as
// is; the application must not start on it.
func New(ctx context.Context, opts ...Option) (*App, error) {
	start := time.Now()
	o := resolveOptions(opts)

	resolved, err := config.Load(ctx, o.loaderOptions...)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	app := &App{
		Name:            util.Coalesce(o.name, resolved.StringOr("APP_NAME", ""), "ssot"),
		Version:         util.Coalesce(o.version, version.Short()),
		Config:          resolved,
		Store:           config.NewStore(resolved),
		Container:       di.NewContainer(),
		gracefulTimeout: 15 * time.Second,
		summaryOutput:   o.summary,
	}
	if o.container != nil {
		app.Container = o.container
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	// Logger: use custom if provided, otherwise init from resolved keys.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		cfg, err := loggerConfig(resolved)
		if err != nil {
			return nil, err
		}
		logger.Init(cfg)
		app.Logger = logger.GetGlobalLogger()
	}

	for key, instance := range map[string]any{
		di.Names.Config: resolved,
		di.Names.Store:  app.Store,
		di.Names.Logger: app.Logger,
	} {
		if err := app.Container.RegisterSingleton(key, instance); err != nil {
			return nil, fmt.Errorf("register %s: %w", key, err)
		}
	}

	app.Summary = NewSummary(app.Name, app.Version)
	app.Summary.TrackConfig(resolved)
	app.Summary.SetStartupDuration(time.Since(start))
	return app, nil
}

// loggerConfig reads LOG_LEVEL, LOG_FORMAT and friends from the resolved configuration.
func loggerConfig(r *config.Resolved) (*logger.Config, error) {
	cfg := &logger.Config{Timestamp: true}
	if err := r.Decode(cfg); err != nil {
		return nil, errors.InvalidInput("logging", err.Error()).WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidInput("logging", err.Error()).WithCause(err)
	}
	return cfg, nil
}

// Run executes the lifecycle of a long-running process:
// OnStart hooks, OnReady hooks, block on signal, OnStop hooks, container close.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop(context.Background())
}

// RunTask executes a finite task with the same lifecycle as Run. The task
// context is canceled on SIGINT or SIGTERM.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(context.Background()); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup runs the hooks shared by Run and RunTask.
func (a *App) startup(ctx context.Context) error {
	a.Logger.Info("Starting application", map[string]interface{}{
		"name":                   a.Name,
		"version":                a.Version,
		logger.FieldResolutionID: a.Config.ID(),
	})

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.DisplaySummary()
	return nil
}

// DisplaySummary prints the startup summary unless it was disabled.
func (a *App) DisplaySummary() {
	if a.summaryOutput == nil || a.summaryOutput.w == nil {
		return
	}
	a.Summary.Render(a.summaryOutput.w)
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
// The hooks see ctx, bounded by the graceful timeout.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop(ctx)
}

// stop runs OnStop hooks and closes the container within the graceful timeout.
func (a *App) stop(parent context.Context) error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(parent, a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("shutdown", err))
		shutdownErr = err
	}

	if err := a.Container.Close(); err != nil {
		a.Logger.Error("DI container close error", logger.ErrorFields("shutdown", err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
