// Package validation checks configuration structs against their
// `validate:"..."` tags with go-playground/validator.
//
// Fields are reported by their config path, built from mapstructure, yaml
// or json tags, so a bad join limit under the demo section shows up as
// "demo.join_limit":
//
//	type DemoConfig struct {
//	    Mode      string `mapstructure:"mode" validate:"oneof=sync async all"`
//	    JoinLimit int    `mapstructure:"join_limit" validate:"limit"`
//	}
//	err := validation.Validate(cfg)
//
// Failures are returned as an *errors.AppError with code INVALID_INPUT and
// the failed fields under Details["fields"].
package validation
