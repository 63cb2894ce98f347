package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-parser/internal/analysis"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

// LivenessMessage is returned by GET /.
const LivenessMessage = "Resume Parser API is alive!"

// handleRoot is the liveness endpoint.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.RootResponse{Message: LivenessMessage})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleParseResume validates the body and runs the analysis pipeline.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalysisRequest(w, r)
	if err != nil {
		logger.FromContext(r.Context()).Debug().Err(err).Msg("rejected analysis request")
		s.errorResponse(w, err)
		return
	}

	text := req.Text()
	result, err := analysis.Analyze(r.Context(), text)
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("analysis aborted")
		s.errorResponse(w, err)
		return
	}

	logger.FromContext(r.Context()).Debug().
		Int("text_length", len(text)).
		Int("skills", len(result.Skills)).
		Int("titles", len(result.Titles)).
		Int("years", result.YearsExperience).
		Int("gaps", len(result.Gaps)).
		Msg("resume analyzed")

	s.jsonResponse(w, http.StatusOK, result)
}

// decodeAnalysisRequest reads and validates a POST /parse-resume body.
// Schema validation catches missing fields and wrong types; the struct
// validator then guards the decoded value.
func (s *Server) decodeAnalysisRequest(w http.ResponseWriter, r *http.Request) (*types.AnalysisRequest, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !isJSONContentType(ct) {
		return nil, &ErrValidation{Fields: []types.FieldError{{
			Field:   "body",
			Message: fmt.Sprintf("expected a JSON body, got content type %q", ct),
		}}}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrBodyTooLarge{Limit: maxErr.Limit}
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if err := schemas.AnalysisRequest().ValidateBytes(body); err != nil {
		return nil, schemaToValidationError(err)
	}

	var req types.AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ErrValidation{Fields: []types.FieldError{{Field: "body", Message: err.Error()}}}
	}

	if err := req.Validate(); err != nil {
		return nil, extractValidationErrors(err)
	}

	return &req, nil
}

// schemaToValidationError converts schema failures into an ErrValidation.
func schemaToValidationError(err error) error {
	var docErr *schemas.DocumentError
	if errors.As(err, &docErr) {
		return &ErrValidation{Fields: []types.FieldError{{Field: "body", Message: "malformed JSON"}}}
	}

	var schemaErr *schemas.ValidationError
	if !errors.As(err, &schemaErr) {
		return err
	}
	fields := make([]types.FieldError, 0, len(schemaErr.Errors))
	for _, fe := range schemaErr.Errors {
		fields = append(fields, types.FieldError{Field: fe.Field, Message: fe.Message})
	}
	return &ErrValidation{Fields: fields}
}

// extractValidationErrors converts validator errors into an ErrValidation using JSON field names.
func extractValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &ErrValidation{}
	}
	fields := make([]types.FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		fields = append(fields, types.FieldError{
			Field:   jsonFieldName(ve.Field()),
			Message: fmt.Sprintf("failed on the '%s' rule", ve.Tag()),
		})
	}
	return &ErrValidation{Fields: fields}
}

// jsonFieldName lowercases the first letter of a Go field name.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// isJSONContentType accepts application/json and any +json media type.
func isJSONContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
