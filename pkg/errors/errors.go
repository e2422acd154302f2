package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"

	// Lockfile errors
	ErrLockfileLoad         ErrorCode = "LOCKFILE_LOAD"
	ErrLockfileParse        ErrorCode = "LOCKFILE_PARSE"
	ErrManifestLockMismatch ErrorCode = "MANIFEST_LOCKFILE_MISMATCH"

	// Composition errors
	ErrDirInvalid   ErrorCode = "DIR_INVALID"
	ErrPatchInvalid ErrorCode = "PATCH_INVALID"

	// Script generation and artifact writing errors
	ErrScriptGen     ErrorCode = "SCRIPT_GENERATE"
	ErrScriptWrite   ErrorCode = "SCRIPT_WRITE"
	ErrSnapshotWrite ErrorCode = "SNAPSHOT_WRITE"
)

// TreesmithError represents a structured error with code and details
type TreesmithError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TreesmithError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TreesmithError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TreesmithError) Is(target error) bool {
	var targetErr *TreesmithError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TreesmithError with the given code and message
func New(code ErrorCode, message string) *TreesmithError {
	return &TreesmithError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TreesmithError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TreesmithError {
	return &TreesmithError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TreesmithError
func Wrap(err error, code ErrorCode, message string) *TreesmithError {
	if err == nil {
		return nil
	}
	return &TreesmithError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TreesmithError {
	if err == nil {
		return nil
	}
	return &TreesmithError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TreesmithError) WithDetail(key string, value interface{}) *TreesmithError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TreesmithError) WithDetails(details map[string]interface{}) *TreesmithError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tserr *TreesmithError
	if errors.As(err, &tserr) {
		return tserr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TreesmithError
func GetErrorCode(err error) ErrorCode {
	var tserr *TreesmithError
	if errors.As(err, &tserr) {
		return tserr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TreesmithError
func GetErrorDetails(err error) map[string]interface{} {
	var tserr *TreesmithError
	if errors.As(err, &tserr) {
		return tserr.Details
	}
	return nil
}
