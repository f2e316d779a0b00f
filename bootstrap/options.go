package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/di"
	"github.com/kbukum/ssot/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	name            string
	version         string
	logger          *logger.Logger
	container       di.Container
	gracefulTimeout *time.Duration
	loaderOptions   []config.LoaderOption
	summary         *summaryOutput
}

type summaryOutput struct {
	w io.Writer
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{summary: &summaryOutput{w: os.Stderr}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the application name. Defaults to APP_NAME, then "ssot".
func WithName(name string) Option {
	return func(o *appOptions) {
		o.name = name
	}
}

// WithVersion sets the reported version. Defaults to the build version.
func WithVersion(v string) Option {
	return func(o *appOptions) {
		o.version = v
	}
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from LOG_* keys of the resolved configuration.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithContainer sets a custom DI container for the application.
func WithContainer(c di.Container) Option {
	return func(o *appOptions) {
		o.container = c
	}
}

// WithLoaderOptions passes options to config.Load.
func WithLoaderOptions(opts ...config.LoaderOption) Option {
	return func(o *appOptions) {
		o.loaderOptions = append(o.loaderOptions, opts...)
	}
}

// WithSummaryWriter sets where the startup summary is printed. Nil disables it.
func WithSummaryWriter(w io.Writer) Option {
	return func(o *appOptions) {
		o.summary = &summaryOutput{w: w}
	}
}
