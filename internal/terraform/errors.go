package terraform

import (
	"errors"
	"fmt"
	"time"
)

// ToolUnavailableError indicates the tool binary could not be executed at
// all (missing from PATH, not executable, or the version check failed).
type ToolUnavailableError struct {
	// Binary is the executable name or path that was attempted.
	Binary string
	// Err is the underlying execution error.
	Err error
}

func (e *ToolUnavailableError) Error() string {
	if e == nil {
		return "tool unavailable"
	}
	return fmt.Sprintf("tool %q unavailable: %v", e.Binary, e.Err)
}

func (e *ToolUnavailableError) Unwrap() error { return e.Err }

// IsToolUnavailable reports whether err indicates a missing or broken tool binary.
func IsToolUnavailable(err error) bool {
	var target *ToolUnavailableError
	return errors.As(err, &target)
}

// TimeoutError indicates an operation exceeded its configured bound. The
// child process has been terminated by the time the error is returned.
type TimeoutError struct {
	// Op is the operation that timed out.
	Op Operation
	// Limit is the configured bound that was exceeded.
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	if e == nil {
		return "operation timed out"
	}
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Limit)
}

// IsTimeout reports whether err indicates an exceeded operation bound.
func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// ProcessError indicates the subprocess ran to completion but exited nonzero.
// Stderr is sanitized and safe to display.
type ProcessError struct {
	Op       Operation
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	if e == nil {
		return "process failed"
	}
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed with exit code %d", e.Op, e.ExitCode)
	}
	return fmt.Sprintf("%s failed with exit code %d: %s", e.Op, e.ExitCode, e.Stderr)
}

// IsProcessFailure reports whether err indicates a nonzero tool exit.
func IsProcessFailure(err error) bool {
	var target *ProcessError
	return errors.As(err, &target)
}

// ParseError indicates the tool produced machine-readable output that could
// not be decoded. It is distinct from ProcessError: the subprocess itself
// succeeded.
type ParseError struct {
	Op  Operation
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "malformed tool output"
	}
	return fmt.Sprintf("parse %s output: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseFailure reports whether err indicates undecodable tool output.
func IsParseFailure(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// InvalidOperationError indicates an unknown symbolic operation name was
// dispatched. No subprocess is started in that case.
type InvalidOperationError struct {
	Name string
}

func (e *InvalidOperationError) Error() string {
	if e == nil {
		return "invalid operation"
	}
	return fmt.Sprintf("unknown operation %q, supported operations: plan, apply, destroy", e.Name)
}

// IsInvalidOperation reports whether err indicates an unknown operation name.
func IsInvalidOperation(err error) bool {
	var target *InvalidOperationError
	return errors.As(err, &target)
}

// InProgressError indicates another operation already holds the working
// directory. The caller may retry once the in-flight operation finishes.
type InProgressError struct {
	WorkDir string
}

func (e *InProgressError) Error() string {
	if e == nil {
		return "operation in progress"
	}
	return fmt.Sprintf("another operation is already running in %s", e.WorkDir)
}

// IsInProgress reports whether err indicates a concurrent operation on the
// same working directory.
func IsInProgress(err error) bool {
	var target *InProgressError
	return errors.As(err, &target)
}
