package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/kbukum/ssot/errors"
)

// Settings controls where the sources are read from. Unset fields fall back
// to the environment, then to the envDefault values.
type Settings struct {
	AppName     string `env:"APP_NAME" envDefault:"ssot" validate:"required,excludes=/"`
	Environment string `env:"APP_ENV" envDefault:"development" validate:"required,excludes=/"`
	ConfigDir   string `env:"CONFIG_DIR"`
	EnvFile     string `env:"ENV_FILE" envDefault:".env"`
}

// SettingsFromEnviron reads Settings from KEY=VALUE pairs.
func SettingsFromEnviron(environ []string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environLookup(environ)}); err != nil {
		return Settings{}, errors.InvalidInput("settings", err.Error()).WithCause(err)
	}
	return s, nil
}
