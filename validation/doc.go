// Package validation validates option structs with go-playground/validator
// struct tags and reports failures as errors.AppError values carrying one
// entry per offending field.
//
//	type Settings struct {
//	    Environment string `env:"APP_ENV" validate:"required,excludes=/"`
//	}
//	err := validation.Validate(settings)
package validation
