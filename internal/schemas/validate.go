// Package schemas provides JSON Schema validation for persisted track-flow
// state. The remote tier is assumed to hold current-shape data; validating
// the payload before unmarshaling catches drift early instead of silently
// loading a half-broken state.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// stateSchema describes the current persisted shape of a user's track-flow
// state. Stage values are a closed set; contacts require the split-name
// fields that distinguish them from legacy recruiter entries.
const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "trackedJobs": {
      "type": "object",
      "additionalProperties": {
        "type": "string",
        "enum": ["customize", "connect", "apply", "done"]
      }
    },
    "customizedResumes": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "jobContacts": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "firstName", "lastName", "companyNameOrUrl"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "firstName": {"type": "string"},
            "lastName": {"type": "string"},
            "companyNameOrUrl": {"type": "string"},
            "email": {"type": "string"},
            "role": {"type": "string"},
            "avatar": {"type": "string"}
          }
        }
      }
    },
    "contactDrafts": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["subject", "body"],
        "properties": {
          "subject": {"type": "string"},
          "body": {"type": "string"}
        }
      }
    }
  }
}`

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// ValidateState checks a raw state payload against the current schema.
// Returns nil when the payload conforms, a *ValidationError when it does
// not, and a plain error when the payload is not valid JSON at all.
func ValidateState(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(stateSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate state payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
