package yt

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Bounds for QueryParameters.MaxResults
const (
	MinResults = 10
	MaxResults = 500
)

// QueryParameters holds the caller-supplied inputs for one pipeline run
type QueryParameters struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results" validate:"min=10,max=500"`
	MaxViews   int    `json:"max_views" validate:"min=0"`
	MaxSubs    int    `json:"max_subs" validate:"min=0"`
	DaysAgo    int    `json:"days_ago" validate:"min=1"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Use JSON field names for validation error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks p against its bounds. Shells call this before running the
// pipeline; the pipeline itself assumes valid input.
func (p QueryParameters) Validate() error {
	err := paramValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return newValidationError(verrs)
}

// ValidationError maps field names to user-facing messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e.Errors[field])
	}
	return fmt.Sprintf("invalid parameters: %s", strings.Join(messages, ", "))
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &ValidationError{Errors: out}
}
