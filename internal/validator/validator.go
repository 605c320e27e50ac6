package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with json-tag field names and
// human-readable messages.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// Report field names from json tags so error messages match the
	// wire format clients actually send.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// Validate validates struct tags on s and returns one entry per failing
// field, or nil when s is valid.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return toValidationErrors(err)
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

func toValidationErrors(err error) ValidationErrors {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", fe.Field())
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("Field %s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Field %s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field %s is invalid", fe.Field())
	}
}
