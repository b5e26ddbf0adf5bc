// Package validation checks command arguments and configuration, turning
// failures into INVALID_INPUT errors that list every offending field.
//
// # Struct Tag Validation
//
//	type Region struct {
//	    Width float64 `json:"width" validate:"gt=0"`
//	}
//	err := validation.Validate(region)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Range("server.port", cfg.Port, 1, 65535).
//	    OneOf("ocr.engine", cfg.Engine, engines).
//	    Validate()
package validation
