// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/models"
)

// newValidator builds the request validator with the custom "topic" rule for
// the fixed tag vocabulary.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("topic", func(fl validator.FieldLevel) bool {
		return models.IsPredefinedTag(fl.Field().String())
	})
	return v
}

// validationError converts the first field violation into a client-facing
// 400 error.
func validationError(err error) *apperr.Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperr.New(apperr.Validation, fieldMessage(fieldErrs[0]))
	}
	return apperr.New(apperr.Validation, "Invalid request")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s requires at least %s entries", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s allows at most %s entries", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "topic":
		return fmt.Sprintf("%q is not a valid tag", fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
