package logger

import (
	"fmt"
	"io"
	"slices"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"log_level"`
	Format    string `yaml:"format" mapstructure:"log_format"`
	Output    string `yaml:"output" mapstructure:"log_output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"log_no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"log_timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"log_caller"`

	// Writer overrides Output when set.
	Writer io.Writer `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills empty string settings. Timestamp is left as given so an
// explicit false survives; callers default it when their source lacks it.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"json", "console", "pretty"}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	return nil
}
