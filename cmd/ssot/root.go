package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/ssot/bootstrap"
	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/logger"
	"github.com/kbukum/ssot/validation"
)

// sourceFlags select where the four sources are read from.
type sourceFlags struct {
	Environment string `json:"env" validate:"omitempty,excludes=/"`
	ConfigDir   string `json:"config_dir"`
	EnvFile     string `json:"env_file"`
	Strict      bool   `json:"strict"`
}

// rootState is shared by all subcommands of one root command.
type rootState struct {
	verbosity int
	sources   sourceFlags
	extra     []config.LoaderOption
	log       *logger.Logger
}

// newRootCmd builds the command tree. extra loader options are applied after
// the flag-derived ones.
func newRootCmd(extra ...config.LoaderOption) *cobra.Command {
	state := &rootState{extra: extra}

	root := &cobra.Command{
		Use:   "ssot",
		Short: "Resolve application configuration from a single source of truth",
		Long: `ssot merges static config files, an env file, the process environment and
command-line flags into one flat configuration. Later sources win:

  static files < env file < process environment < command-line flags

Keys are case-insensitive and reported in uppercase.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			state.log = newCLILogger(cmd, state.verbosity)
			state.log.Debug("Command started", logger.Fields("command", cmd.Name()))
			return validation.Validate(state.sources)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.CountVarP(&state.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG)")
	flags.StringVarP(&state.sources.Environment, "env", "e", "", "Environment selecting the static file variant (default $APP_ENV or development)")
	flags.StringVar(&state.sources.ConfigDir, "config-dir", "", "Static config directory (default $CONFIG_DIR, ./config or the XDG config dir)")
	flags.StringVar(&state.sources.EnvFile, "env-file", "", "Env file path (default $ENV_FILE or .env)")
	flags.BoolVar(&state.sources.Strict, "strict", false, "Fail when a source defines one key in several spellings")

	root.AddCommand(newResolveCmd(state))
	root.AddCommand(newGetCmd(state))
	root.AddCommand(newVersionCmd())
	return root
}

// newCLILogger logs to stderr; warnings only unless -v is given.
func newCLILogger(cmd *cobra.Command, verbosity int) *logger.Logger {
	level := "warn"
	switch {
	case verbosity >= 2:
		level = "debug"
	case verbosity == 1:
		level = "info"
	}
	cfg := &logger.Config{Level: level, Format: logger.FormatConsole, Timestamp: true, Writer: cmd.ErrOrStderr()}
	cfg.ApplyDefaults()
	return logger.New(cfg, "ssot")
}

// loaderOptions turns the source flags and the app arguments into loader options.
func (s *rootState) loaderOptions(appArgs []string) []config.LoaderOption {
	opts := []config.LoaderOption{
		config.WithLogger(s.log.WithComponent("config")),
		config.WithArgs(appArgs),
		config.WithStrictKeys(s.sources.Strict),
	}
	if s.sources.Environment != "" {
		opts = append(opts, config.WithEnvironment(s.sources.Environment))
	}
	if s.sources.ConfigDir != "" {
		opts = append(opts, config.WithConfigDir(s.sources.ConfigDir))
	}
	if s.sources.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(s.sources.EnvFile))
	}
	return append(opts, s.extra...)
}

// run resolves the configuration and hands it to task.
func (s *rootState) run(ctx context.Context, appArgs []string, task func(ctx context.Context, r *config.Resolved) error) error {
	app, err := bootstrap.New(ctx,
		bootstrap.WithName("ssot"),
		bootstrap.WithLogger(s.log),
		bootstrap.WithSummaryWriter(nil),
		bootstrap.WithLoaderOptions(s.loaderOptions(appArgs)...),
	)
	if err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, app.Store.Load())
	})
}

// splitArgs separates positional arguments from the app flags after "--".
func splitArgs(cmd *cobra.Command, args []string) (positional, appArgs []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func expectPositional(cmd *cobra.Command, args []string, n int) ([]string, []string, error) {
	positional, appArgs := splitArgs(cmd, args)
	if len(positional) != n {
		return nil, nil, fmt.Errorf("%s expects %d argument(s) before --, got %d", cmd.Name(), n, len(positional))
	}
	return positional, appArgs, nil
}
