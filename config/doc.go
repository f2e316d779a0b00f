// Package config resolves the process configuration from four flat sources
// into one immutable mapping.
//
// Precedence, lowest to highest:
//
//  1. static config files (config/default.json, config/<APP_ENV>.json, ...)
//  2. the .env file
//  3. the process environment
//  4. command-line arguments
//
// Every key is uppercased on the way in, so --port, port and PORT all name
// the same value. The merge is a shallow overlay: a higher source replaces a
// value wholesale.
//
// # Usage
//
//	cfg, err := config.Load(ctx, config.WithEnvironment("production"))
//	if err != nil {
//	    return err
//	}
//	port := cfg.IntOr("PORT", 8080)
//
// Pre-parsed mappings can be merged directly:
//
//	cfg := config.Resolve(static, dotEnv, config.ProcessEnv(), config.ParseArgs(os.Args[1:]))
package config
