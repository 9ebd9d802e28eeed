package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookcatalog/internal/validation"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks request DTO tags and reports failures under their
// JSON field names.
func ValidateStruct(s any) []validation.Failure {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []validation.Failure{{Field: "body", Message: err.Error()}}
	}

	failures := make([]validation.Failure, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max", "lte":
			message = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		failures = append(failures, validation.Failure{Field: field, Message: message})
	}
	return failures
}
