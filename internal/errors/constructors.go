package errors

import (
	"fmt"
	"strings"
)

// Convenience functions for common error patterns

// Per-file conditions

func UnrecognizedFilename(name, expected string) *DocxPostsError {
	return Wrap(ErrUnrecognizedFilename, CategoryFilename, SeverityWarning,
		fmt.Sprintf("doesn't match %s", expected)).
		WithContext("file", name)
}

func ConversionFailed(name string, cause error) *DocxPostsError {
	return Wrap(fmt.Errorf("%w: %w", ErrConversionFailed, cause), CategoryConversion, SeverityError,
		"converter failed").
		WithContext("file", name)
}

func AlreadyExists(path string) *DocxPostsError {
	return Wrap(ErrAlreadyExists, CategoryExists, SeverityInfo, "markdown already exists").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *DocxPostsError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "writing output failed").
		WithContext("path", path)
}

// Run-level conditions

func NoInputLocations(dirs ...string) *DocxPostsError {
	return Wrap(ErrNoInputLocations, CategoryInput, SeverityFatal,
		fmt.Sprintf("nothing to do: none of %s exists", strings.Join(dirs, ", "))).
		WithContext("dirs", dirs)
}

func ConfigInvalid(field, reason string) *DocxPostsError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("invalid configuration: %s %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

func ConfigLoadFailed(path string, cause error) *DocxPostsError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "loading configuration failed").
		WithContext("path", path)
}

func FileSystemError(operation string, cause error) *DocxPostsError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

func InternalError(message string, cause error) *DocxPostsError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
