package cli

import (
	"errors"
	"fmt"

	"github.com/dori/scheduler/internal/model"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // Storage, constraint or query failure
	ExitUsage   = 2 // Usage error or malformed input
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitUsage)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that never reached a command body come from argument parsing and
// count as usage errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// exitError classifies a command failure by its error kind
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch model.KindOf(err) {
	case model.ErrMalformedInput:
		return WrapExitError(ExitUsage, "invalid input", err)
	case model.ErrConstraintViolation:
		return WrapExitError(ExitFailure, "constraint violated", err)
	case model.ErrStorageUnavailable:
		return WrapExitError(ExitFailure, "storage unavailable", err)
	default:
		return WrapExitError(ExitFailure, "command failed", err)
	}
}
