// Package validation checks caller variable documents against the optional
// schema a template declares in its metadata block. The schema uses the
// OpenAPI dialect handled by kin-openapi, which keeps templates compatible
// with the schemas teams already maintain for their APIs.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/template"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating a variable document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err converts a failed result into an error naming every issue; nil when
// the result is valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	messages := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			messages = append(messages, issue.Path+": "+issue.Message)
			continue
		}
		messages = append(messages, issue.Message)
	}
	if len(messages) == 0 {
		messages = append(messages, "variable document is invalid")
	}
	return errors.New("validation: " + strings.Join(messages, "; "))
}

// ValidateVariables checks the raw caller variable document against the
// schema object from the template metadata. An absent schema (zero Value)
// validates trivially.
func ValidateVariables(schemaVal, doc template.Value) Result {
	if schemaVal.Kind() != template.KindObject {
		return Result{Valid: true}
	}

	raw, err := json.Marshal(schemaVal)
	if err != nil {
		return Result{Issues: []Issue{{Message: fmt.Sprintf("encode schema: %v", err)}}}
	}

	schema := openapi3.NewSchema()
	if err := schema.UnmarshalJSON(raw); err != nil {
		return Result{Issues: []Issue{{Message: fmt.Sprintf("parse schema: %v", err)}}}
	}

	value, err := plainValue(doc)
	if err != nil {
		return Result{Issues: []Issue{{Message: fmt.Sprintf("encode variables: %v", err)}}}
	}

	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return Result{Issues: issuesFromError(err)}
	}
	return Result{Valid: true}
}

// plainValue round-trips the document through encoding/json so the validator
// sees the standard decoded shapes (float64 numbers, map[string]any objects).
func plainValue(doc template.Value) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var issues []Issue
		for _, item := range multi {
			issues = append(issues, issuesFromError(item)...)
		}
		return issues
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Path:    pointerPath(schemaErr.JSONPointer()),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}

	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}

func pointerPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}
