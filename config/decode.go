package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies the resolved values into target, a pointer to a struct or map.
//
// Field names match keys case-insensitively, so a `mapstructure:"db_host"`
// tag (or a field named Db_Host) receives DB_HOST. String values are weakly
// converted to the field type; durations and comma-separated lists are
// understood.
func (r *Resolved) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(r.All())); err != nil {
		return fmt.Errorf("failed to decode resolved config: %w", err)
	}
	return nil
}
