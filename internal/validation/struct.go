package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates a request DTO against its `validate` tags.
func Struct(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Code: CodeInvalidValue, Description: err.Error()}}
	}

	errs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return errs
}

func fieldError(fe validator.FieldError) Error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return Error{Code: CodeRequired, Description: fmt.Sprintf("%s is required", field)}
	case "max":
		if fe.Kind() == reflect.String {
			return Error{Code: CodeTooLong, Description: fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())}
		}
		return Error{Code: CodeOutOfRange, Description: fmt.Sprintf("%s must be at most %s", field, fe.Param())}
	case "min":
		return Error{Code: CodeOutOfRange, Description: fmt.Sprintf("%s must be at least %s", field, fe.Param())}
	case "oneof":
		return Error{Code: CodeInvalidValue, Description: fmt.Sprintf("%s must be one of [%s]", field, fe.Param())}
	default:
		return Error{Code: CodeInvalidValue, Description: fmt.Sprintf("%s is invalid", field)}
	}
}
