// Package types provides type definitions for structured data used throughout the resume-parser system.
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalysisRequest is the body accepted by POST /parse-resume.
// ResumeText is a pointer so that an absent field can be told apart from an empty string;
// the empty string is valid input.
type AnalysisRequest struct {
	ResumeText *string `json:"resumeText" validate:"required"`
}

// Validate validates the AnalysisRequest using the validator.
func (r *AnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// Text returns the resume text, or "" when the field is unset.
func (r *AnalysisRequest) Text() string {
	if r == nil || r.ResumeText == nil {
		return ""
	}
	return *r.ResumeText
}

// AnalysisResult is the keyword analysis of a single resume.
// Field order is part of the wire contract.
type AnalysisResult struct {
	Skills          []string `json:"skills"`
	Titles          []string `json:"titles"`
	YearsExperience int      `json:"yearsExperience"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// RootResponse is returned by the liveness endpoint.
type RootResponse struct {
	Message string `json:"message"`
}

// FieldError describes a single invalid field in a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}
