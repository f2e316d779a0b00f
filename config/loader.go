package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/adrg/xdg"

	"github.com/kbukum/ssot/errors"
	"github.com/kbukum/ssot/logger"
	"github.com/kbukum/ssot/observability"
	"github.com/kbukum/ssot/validation"
)

// LoaderConfig holds dependencies and optional overrides for Load.
type LoaderConfig struct {
	Settings

	FileSystem   FileSystem
	Logger       *logger.Logger
	StrictKeys   bool // Reject sources that spell one key in several cases
	ExportDotEnv bool // Also copy env file variables into the process environment

	args       []string
	argsSet    bool
	environ    []string
	environSet bool
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithLogger sets the logger used to report what was loaded.
func WithLogger(l *logger.Logger) LoaderOption {
	return func(lc *LoaderConfig) { lc.Logger = l }
}

// WithAppName sets the application name used for config dir discovery.
func WithAppName(name string) LoaderOption {
	return func(lc *LoaderConfig) { lc.AppName = name }
}

// WithEnvironment selects the static file variant (default, production, ...).
func WithEnvironment(name string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Environment = name }
}

// WithConfigDir sets an explicit static config directory.
func WithConfigDir(dir string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigDir = dir }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithArgs sets the command-line arguments to parse instead of os.Args[1:].
func WithArgs(args []string) LoaderOption {
	return func(lc *LoaderConfig) {
		lc.args = args
		lc.argsSet = true
	}
}

// WithEnviron sets the KEY=VALUE environment instead of os.Environ().
func WithEnviron(environ []string) LoaderOption {
	return func(lc *LoaderConfig) {
		lc.environ = environ
		lc.environSet = true
	}
}

// WithStrictKeys rejects a source that defines one key in several spellings.
func WithStrictKeys(strict bool) LoaderOption {
	return func(lc *LoaderConfig) { lc.StrictKeys = strict }
}

// WithExportDotEnv copies env file variables into the process environment.
func WithExportDotEnv(export bool) LoaderOption {
	return func(lc *LoaderConfig) { lc.ExportDotEnv = export }
}

// Load reads the four sources once and resolves them.
//
// Static files come from ConfigDir (or ./config, or the XDG config dir of
// AppName) for the selected environment, then the env file, the process
// environment and the command-line arguments, in ascending precedence.
// Missing sources are empty; malformed files are fatal errors.
func Load(ctx context.Context, opts ...LoaderOption) (*Resolved, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanConfigLoad)
	defer span.End()

	lc, err := newLoaderConfig(opts)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	log := lc.Logger
	start := time.Now()

	layers, err := loadLayers(ctx, lc)
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Error("Failed to load configuration sources", logger.ErrorFields("config.load", err))
		return nil, err
	}

	rctx, rspan := observability.StartSpan(ctx, observability.SpanConfigResolve)
	resolved := ResolveLayers(layers...)
	observability.SetSpanAttribute(rctx, observability.AttrKeyCount, resolved.Len())
	rspan.End()

	counts := resolved.CountBySource()
	fields := logger.Fields(
		logger.FieldResolutionID, resolved.ID(),
		logger.FieldEnvironment, lc.Environment,
		logger.FieldCount, resolved.Len(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	for _, s := range Sources() {
		fields[s.String()] = counts[s]
	}
	log.Info("Configuration resolved", fields)

	observability.SetSpanAttribute(ctx, observability.AttrResolutionID, resolved.ID())
	observability.SetSpanAttribute(ctx, observability.AttrEnvironment, lc.Environment)
	observability.SetSpanAttribute(ctx, observability.AttrKeyCount, resolved.Len())

	return resolved, nil
}

// newLoaderConfig applies options, fills unset settings from the environment
// and validates the result.
func newLoaderConfig(opts []LoaderOption) (*LoaderConfig, error) {
	lc := &LoaderConfig{}
	for _, opt := range opts {
		opt(lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = OSFileSystem{}
	}
	if lc.Logger == nil {
		lc.Logger = logger.Get("config")
	}
	if !lc.environSet {
		lc.environ = os.Environ()
	}
	if !lc.argsSet && len(os.Args) > 1 {
		lc.args = os.Args[1:]
	}

	defaults, err := SettingsFromEnviron(lc.environ)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&lc.Settings, defaults); err != nil {
		return nil, errors.Internal(fmt.Errorf("merge loader settings: %w", err))
	}
	if err := validation.Validate(lc.Settings); err != nil {
		return nil, err
	}
	if lc.ConfigDir == "" {
		lc.ConfigDir = discoverConfigDir(lc.FileSystem, lc.AppName)
	}
	return lc, nil
}

// loadLayers runs the four source collaborators.
func loadLayers(ctx context.Context, lc *LoaderConfig) ([]Layer, error) {
	log := lc.Logger

	ctx, span := observability.StartSpan(ctx, observability.SpanConfigSource)
	defer span.End()

	static, files, err := LoadStaticFiles(lc.FileSystem, lc.ConfigDir, lc.Environment)
	if err != nil {
		return nil, fmt.Errorf("static config: %w", err)
	}
	for _, f := range files {
		log.Debug("Loaded config file", logger.Fields(logger.FieldPath, f))
	}
	if len(files) > 0 {
		observability.SetSpanAttribute(ctx, observability.AttrPath, files)
	}

	dotEnv, err := LoadDotEnv(lc.FileSystem, lc.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}

	processEnv := Environ(lc.environ)
	cliArgs := ParseArgs(lc.args)

	layers := []Layer{
		{Source: SourceStaticFile, Values: static},
		{Source: SourceDotEnv, Values: dotEnv},
		{Source: SourceProcessEnv, Values: processEnv},
		{Source: SourceCLI, Values: cliArgs},
	}

	if lc.StrictKeys {
		for _, layer := range layers {
			if _, err := NormalizeStrict(layer.Values); err != nil {
				if appErr, ok := errors.As(err); ok {
					appErr.WithDetail(logger.FieldSource, layer.Source.String())
				}
				return nil, fmt.Errorf("%s: %w", layer.Source, err)
			}
		}
	}

	if lc.ExportDotEnv && len(dotEnv) > 0 {
		if err := ExportDotEnv(lc.EnvFile); err != nil {
			return nil, fmt.Errorf("export env file: %w", err)
		}
	}

	for _, layer := range layers {
		log.Debug("Loaded source", logger.Fields(
			logger.FieldSource, layer.Source.String(),
			logger.FieldCount, len(layer.Values),
		))
	}
	return layers, nil
}

// discoverConfigDir returns ./config, or the XDG config dir of appName, when present.
func discoverConfigDir(fs FileSystem, appName string) string {
	candidates := []string{
		"config",
		filepath.Join(xdg.ConfigHome, appName),
	}
	for _, dir := range candidates {
		if fs.Exists(dir) {
			return dir
		}
	}
	return ""
}
