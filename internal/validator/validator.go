package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

// Validator wraps go-playground validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// New creates a validator with custom rules registered
func New() *Validator {
	validate := validator.New()

	// Report json field names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates a struct and returns ValidationErrors on failure
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerRules() {
	// Block locations must be well-formed usage keys
	v.validate.RegisterValidation("usage_key", func(fl validator.FieldLevel) bool {
		_, err := models.ParseUsageKey(fl.Field().String())
		return err == nil
	})
}

// ToValidationErrors converts go-playground errors into ValidationErrors
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return result
}

// errorMessage returns user-friendly error messages
func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "usage_key":
		return "must be a block usage key (block-v1:org+course+run+type@type+block@id)"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
