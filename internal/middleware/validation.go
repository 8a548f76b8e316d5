package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/club-admin-api/internal/model"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validationMessages = map[string]string{
	"required": "Field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"max":      "Value is too long",
	"gte":      "Value is too small",
	"enum":     "Value is not one of the allowed options",
}

// RegisterValidators installs the "enum" tag and reports fields by their json
// names. It must run before the router serves requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v.RegisterValidation("enum", validateEnum)
}

// validateEnum accepts zero values so "omitempty" defaults still apply.
func validateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.IsZero() {
		return true
	}
	e, ok := field.Interface().(model.Enum)
	if !ok {
		return false
	}
	return e.Valid()
}

func translate(errs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		msg, ok := validationMessages[e.Tag()]
		if !ok {
			msg = e.Error()
		}
		if e.Tag() == "gtfield" {
			msg = fmt.Sprintf("Must be after %s", e.Param())
		}
		out = append(out, ValidationError{Field: e.Field(), Message: msg})
	}
	return out
}
