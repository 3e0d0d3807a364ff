// Package validation provides struct validation for pipeline documents
// using go-playground/validator with a custom node identifier format.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

var nodeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("node_id", validateNodeID)

	// Report fields by their JSON tag so diagnostics match the document.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

func validateNodeID(fl validator.FieldLevel) bool {
	return nodeIDPattern.MatchString(fl.Field().String())
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %q: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors aggregates failures across fields.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct validates a struct against its validate tags.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	return formatValidationErrors(err)
}

func formatValidationErrors(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errs ValidationErrors
	for _, fe := range fieldErrors {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Message: messageFor(fe),
		})
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "node_id":
		return "must contain only letters, digits, underscores and dashes"
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
