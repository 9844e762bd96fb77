package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "marketplace-admin/internal/common/errors"
)

// FieldError describes a single failed check on a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the outcome of validating one form submission.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Validate checks form (a map of field name to value) against a JSON
// schema expressed as a Go map. Schemas live next to the form that owns
// them; validation failures never reach the network.
func Validate(form, schema map[string]interface{}) (*Result, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(form)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &Result{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}

// Require validates and converts a failed Result into a single
// ValidationError whose details list every failed field.
func Require(form, schema map[string]interface{}) error {
	result, err := Validate(form, schema)
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	msgs := make([]string, len(result.Errors))
	for i, fe := range result.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return apperrors.NewValidationError(strings.Join(msgs, "; "))
}
