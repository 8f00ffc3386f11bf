// Zaparoo Timekit
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Timekit.
//
// Zaparoo Timekit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Timekit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Timekit.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/timezone"
	"github.com/go-playground/validator/v10"
)

var configValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("duration", validateDuration)
	_ = v.RegisterValidation("zone", validateZone)

	return v
}

// ValidationError lists every config field that failed validation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Messages, "; ")
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{Messages: make([]string, len(errs))}
	for i, fe := range errs {
		ve.Messages[i] = formatValidationError(fe)
	}
	return ve
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "" {
		field = "value"
	}
	switch fe.Tag() {
	case "duration":
		return fmt.Sprintf("%s must be a positive duration (e.g., 15m), got %q", field, fe.Value())
	case "zone":
		return fmt.Sprintf("%s %q is not a known timezone", field, fe.Value())
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return newValidationError(validationErrors)
	}
	return fmt.Errorf("validation failed: %w", err)
}

func validate(vals *Values) error {
	return wrapValidation(configValidator.Struct(vals))
}

func validateVar(value any, tag string) error {
	return wrapValidation(configValidator.Var(value, tag))
}

// validateDuration checks if string is a valid, positive Go duration.
func validateDuration(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	d, err := time.ParseDuration(val)
	return err == nil && d > 0
}

// validateZone checks the zone name resolves the same way the timezone
// service will resolve it.
func validateZone(fl validator.FieldLevel) bool {
	_, err := timezone.LoadLocation(fl.Field().String())
	return err == nil
}
