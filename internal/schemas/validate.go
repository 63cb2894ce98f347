// Package schemas provides JSON Schema validation for the API's request and response bodies.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis_request.schema.json
var analysisRequestSchema string

//go:embed analysis_result.schema.json
var analysisResultSchema string

var (
	analysisRequest = MustCompile("analysis_request.schema.json", analysisRequestSchema)
	analysisResult  = MustCompile("analysis_result.schema.json", analysisResultSchema)
)

// AnalysisRequest returns the compiled schema for POST /parse-resume bodies.
func AnalysisRequest() *Schema { return analysisRequest }

// AnalysisResult returns the compiled schema for POST /parse-resume responses.
func AnalysisResult() *Schema { return analysisResult }

// Schema is a compiled JSON Schema. It is immutable and safe for concurrent use.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
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

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError is returned when the document is not parseable JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("malformed JSON document: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Compile parses schema content. name is only used in error messages.
func Compile(name, content string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    name,
			Message: "invalid schema",
			Cause:   err,
		}
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompile is like Compile but panics on error. Intended for embedded schemas.
func MustCompile(name, content string) *Schema {
	s, err := Compile(name, content)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled with.
func (s *Schema) Name() string { return s.name }

// ValidateBytes validates a JSON document. It returns *DocumentError when data is
// not JSON and *ValidationError when data does not satisfy the schema.
func (s *Schema) ValidateBytes(data []byte) error {
	return s.validate(gojsonschema.NewBytesLoader(data))
}

// ValidateValue validates any Go value after JSON marshaling.
func (s *Schema) ValidateValue(v any) error {
	return s.validate(gojsonschema.NewGoLoader(v))
}

func (s *Schema) validate(doc gojsonschema.JSONLoader) error {
	result, err := s.schema.Validate(doc)
	if err != nil {
		return &DocumentError{Cause: err}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   fieldName(desc),
			Message: desc.Description(),
		})
	}

	return validationErr
}

// fieldName reports the offending field. For "required" failures gojsonschema
// points at the parent object, so the missing property name is used instead.
func fieldName(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			if parent := desc.Field(); parent != "" && parent != "(root)" {
				return parent + "." + prop
			}
			return prop
		}
	}
	field := desc.Field()
	if field == "" {
		field = "(root)"
	}
	return field
}
