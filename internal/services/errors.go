package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// notFound turns repository.ErrNotFound into a NotFound error carrying msg.
// Other errors pass through untouched.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(err, apperr.NotFound, msg)
	}
	return err
}

// validateInput runs the struct's validate tags and reports the first
// failing field as InvalidArgument.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Wrap(err, apperr.InvalidArgument, "Invalid request.")
	}
	fe := fieldErrs[0]
	return apperr.Wrap(err, apperr.InvalidArgument, fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return "A valid email address is required."
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", field)
	case "datauri":
		return fmt.Sprintf("%s must be a data URI.", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long.", field)
	case "gte":
		return fmt.Sprintf("%s must not be negative.", field)
	}
	return fmt.Sprintf("%s is invalid.", field)
}
