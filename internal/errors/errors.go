// Package errors provides a lightweight structured error type (DocxPostsError)
// for category-based classification of conversion failures and CLI exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an error for classification.
type ErrorCategory string

const (
	// Per-file conditions; recovered locally by the orchestrator.
	CategoryFilename   ErrorCategory = "filename"
	CategoryConversion ErrorCategory = "conversion"
	CategoryExists     ErrorCategory = "exists"

	// Run-level conditions.
	CategoryInput      ErrorCategory = "input"
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// Sentinels for errors.Is matching. Constructors below wrap them so callers
// can classify without type assertions.
var (
	ErrUnrecognizedFilename = stderrors.New("unrecognized filename")
	ErrConversionFailed     = stderrors.New("conversion failed")
	ErrAlreadyExists        = stderrors.New("output already exists")
	ErrNoInputLocations     = stderrors.New("no input locations")
)

// DocxPostsError is a structured error with category, severity and context.
type DocxPostsError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocxPostsError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *DocxPostsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping.
func (e *DocxPostsError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *DocxPostsError) WithContext(key string, value any) *DocxPostsError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocxPostsError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocxPostsError {
	return &DocxPostsError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocxPostsError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocxPostsError {
	return &DocxPostsError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first DocxPostsError in err's chain.
func As(err error) (*DocxPostsError, bool) {
	var dpe *DocxPostsError
	if stderrors.As(err, &dpe) {
		return dpe, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a category.
func IsCategory(err error, category ErrorCategory) bool {
	if dpe, ok := As(err); ok {
		return dpe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if the chain holds no DocxPostsError.
func GetCategory(err error) ErrorCategory {
	if dpe, ok := As(err); ok {
		return dpe.Category
	}
	return CategoryInternal
}
