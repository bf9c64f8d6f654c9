package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/soldout/backend/internal/errors"
)

func init() {
	// report json (or form) names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireName)
	}
}

func wireName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.Split(field.Tag.Get(tag), ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// BindError turns a ShouldBind failure into a ValidationError. The first
// failed rule names the field; a missing required field reports
// MISSING_REQUIRED_FIELDS and anything else VALIDATION_ERROR.
func BindError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return apperrors.NewValidationError("request", "Invalid request format")
	}

	fe := fields[0]
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationErrorCode(name, apperrors.CodeMissingFields, "Missing required field")
	case "email":
		return apperrors.NewValidationError(name, "Invalid email address")
	case "min":
		if fe.Kind() == reflect.String {
			return apperrors.NewValidationError(name, fmt.Sprintf("Must be at least %s characters long", fe.Param()))
		}
		return apperrors.NewValidationError(name, fmt.Sprintf("Must be at least %s", fe.Param()))
	case "max":
		if fe.Kind() == reflect.String {
			return apperrors.NewValidationError(name, fmt.Sprintf("Must be at most %s characters long", fe.Param()))
		}
		return apperrors.NewValidationError(name, fmt.Sprintf("Must be at most %s", fe.Param()))
	case "oneof":
		return apperrors.NewValidationError(name, fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", ")))
	default:
		return apperrors.NewValidationError(name, "Invalid value")
	}
}
