// Package bootstrap starts an application from a single resolved configuration.
//
// New resolves the configuration once, initializes the logger from it and
// registers the result in a DI container before any application code runs.
// A malformed config or env file stops startup.
//
// # Quick Start
//
//	app, err := bootstrap.New(ctx,
//	    bootstrap.WithName("billing"),
//	    bootstrap.WithLoaderOptions(config.WithStrictKeys(true)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx, app.Config)
//	})
package bootstrap
