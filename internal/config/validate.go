package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buemura/reconbox/internal/logger"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("scanner", func(fl validator.FieldLevel) bool {
		_, err := scanner.ParseID(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logger.ParseLevel(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		_, err := logger.ParseFormat(fl.Field().String())
		return err == nil
	})

	return validate
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		msg := fmt.Sprintf("%s: failed rule '%s'", field, e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if v := e.Value(); v != nil && v != "" {
			msg += fmt.Sprintf(", actual: '%v'", v)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(msgs, "\n  "))
}
