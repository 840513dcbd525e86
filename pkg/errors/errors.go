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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Pre-flight errors. Each one aborts the run before any fetch starts.
	ErrInvalidParent     ErrorCode = "INVALID_PARENT"
	ErrBaseNotFound      ErrorCode = "BASE_NOT_FOUND"
	ErrNoSnapshots       ErrorCode = "NO_SNAPSHOTS"
	ErrDestExists        ErrorCode = "DEST_EXISTS"
	ErrDestMissing       ErrorCode = "DEST_MISSING"
	ErrIncompatibleMode  ErrorCode = "INCOMPATIBLE_MODE"
	ErrDateParse         ErrorCode = "DATE_PARSE"
	ErrUnsupportedVolume ErrorCode = "UNSUPPORTED_VOLUME"
	ErrAuthorization     ErrorCode = "AUTHORIZATION"
	ErrNoAssets          ErrorCode = "NO_ASSETS"

	// Library errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrNetworkDisabled ErrorCode = "NETWORK_DISABLED"
	ErrFetch           ErrorCode = "FETCH"

	// Per-resource errors
	ErrVerifyMismatch   ErrorCode = "VERIFY_MISMATCH"
	ErrFileAccess       ErrorCode = "FILE_ACCESS"
	ErrFileCreate       ErrorCode = "FILE_CREATE"
	ErrDirCreate        ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate    ErrorCode = "SYMLINK_CREATE"
	ErrHardlinkCreate   ErrorCode = "HARDLINK_CREATE"
	ErrCloneCreate      ErrorCode = "CLONE_CREATE"
	ErrCloneUnsupported ErrorCode = "CLONE_UNSUPPORTED"
)

// Process exit codes. Negative codes are reserved for pre-flight failures.
const (
	ExitOK                = 0
	ExitGeneric           = 1
	ExitIncomplete        = 100
	ExitInvalidFolder     = -1
	ExitNoAssets          = -2
	ExitAuthorization     = -3
	ExitDateParse         = -4
	ExitIncompatibleMode  = -5
	ExitUnsupportedVolume = -6
	ExitConfig            = -7
)

var exitCodes = map[ErrorCode]int{
	ErrInvalidParent:     ExitInvalidFolder,
	ErrBaseNotFound:      ExitInvalidFolder,
	ErrNoSnapshots:       ExitInvalidFolder,
	ErrDestExists:        ExitInvalidFolder,
	ErrDestMissing:       ExitInvalidFolder,
	ErrNoAssets:          ExitNoAssets,
	ErrAuthorization:     ExitAuthorization,
	ErrManifestLoad:      ExitAuthorization,
	ErrManifestInvalid:   ExitAuthorization,
	ErrDateParse:         ExitDateParse,
	ErrIncompatibleMode:  ExitIncompatibleMode,
	ErrUnsupportedVolume: ExitUnsupportedVolume,
	ErrConfigLoad:        ExitConfig,
	ErrConfigParse:       ExitConfig,
}

// PhotosnapError represents a structured error with code and details
type PhotosnapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PhotosnapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PhotosnapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PhotosnapError) Is(target error) bool {
	var targetErr *PhotosnapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PhotosnapError with the given code and message
func New(code ErrorCode, message string) *PhotosnapError {
	return &PhotosnapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PhotosnapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PhotosnapError {
	return &PhotosnapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PhotosnapError
func Wrap(err error, code ErrorCode, message string) *PhotosnapError {
	if err == nil {
		return nil
	}
	return &PhotosnapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PhotosnapError {
	if err == nil {
		return nil
	}
	return &PhotosnapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PhotosnapError) WithDetail(key string, value interface{}) *PhotosnapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var snapErr *PhotosnapError
	if errors.As(err, &snapErr) {
		return snapErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PhotosnapError
func GetErrorCode(err error) ErrorCode {
	var snapErr *PhotosnapError
	if errors.As(err, &snapErr) {
		return snapErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PhotosnapError
func GetErrorDetails(err error) map[string]interface{} {
	var snapErr *PhotosnapError
	if errors.As(err, &snapErr) {
		return snapErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit code. A nil error maps to ExitOK
// and errors without a pre-flight code map to ExitGeneric.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return ExitGeneric
}
