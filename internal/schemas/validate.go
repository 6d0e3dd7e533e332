// Package schemas provides JSON Schema validation for model-generated
// payloads. Schemas are embedded at compile time so validation never
// depends on the working directory.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed ai_timeline.json
var aiTimelineSchema string

// AITimelineSchema returns the JSON Schema the AI timeline response must
// satisfy. It is also rendered into the generation prompt.
func AITimelineSchema() string {
	return aiTimelineSchema
}

// ValidationError reports every field that failed schema validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation failure at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAITimeline validates a JSON document against the AI timeline
// schema. Returns nil when valid, a *ValidationError listing the failing
// fields when invalid, or a plain error when the document is not JSON.
func ValidateAITimeline(document string) error {
	return validate(aiTimelineSchema, document)
}

func validate(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
