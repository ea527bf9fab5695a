package config

import (
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/validator"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrConcurrency indicates a non-positive concurrency.
	ErrConcurrency = errors.New("concurrency must be >= 1")

	// ErrInvalidValue indicates a field holds a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")
)

// FieldError reports an invalid value for one configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or one error per invalid field.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}
	if cfg.DefaultDatabase != "" && !database.Known(cfg.DefaultDatabase) {
		errs = append(errs, &FieldError{Field: KeyDefaultDatabase, Value: cfg.DefaultDatabase, Err: errors.ErrUnknownDatabase})
	}
	if _, err := validator.ParseRenderMode(cfg.RenderMode); err != nil {
		errs = append(errs, &FieldError{Field: KeyRenderMode, Value: cfg.RenderMode, Err: ErrInvalidValue})
	}
	if _, err := validator.ParseFormat(cfg.Format); err != nil {
		errs = append(errs, &FieldError{Field: KeyFormat, Value: cfg.Format, Err: ErrInvalidValue})
	}
	if cfg.Concurrency < 1 {
		errs = append(errs, ErrConcurrency)
	}
	return errs
}
