package themelint

import (
	"errors"
	"fmt"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ErrorKind classifies fatal conditions.
type ErrorKind int

const (
	KindEnvironmentUnsupported ErrorKind = iota + 1
	KindManifestMissing
	KindManifestInvalid
	KindLayoutUndetected
	KindToolingMissing
	KindDelegateFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindEnvironmentUnsupported:
		return "environment unsupported"
	case KindManifestMissing:
		return "manifest missing"
	case KindManifestInvalid:
		return "manifest invalid"
	case KindLayoutUndetected:
		return "layout undetected"
	case KindToolingMissing:
		return "tooling missing"
	case KindDelegateFailure:
		return "delegate failure"
	default:
		return "unknown"
	}
}

// Error is a fatal condition that maps to a process exit code.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
	Code    int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error.
func (e *Error) ExitCode() int {
	if e.Code != 0 {
		return e.Code
	}
	return ExitFailure
}

// Silent reports whether the error was already explained to the user.
// A failing linter prints its own diagnostics; missing tooling is reported
// together with its remediation.
func (e *Error) Silent() bool {
	return e.Kind == KindDelegateFailure || e.Kind == KindToolingMissing
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// DelegateFailed wraps a non-zero linter exit code. Codes that cannot be
// passed on as a process status, such as -1 for a signal, become ExitFailure.
func DelegateFailed(code int) *Error {
	if code < 0 || code > 255 {
		code = ExitFailure
	}
	return &Error{
		Kind:    KindDelegateFailure,
		Message: fmt.Sprintf("stylelint exited with status %d", code),
		Code:    code,
	}
}

// ExitCode extracts the process exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitFailure
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsSilent reports whether err should be reported without a message.
func IsSilent(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Silent()
}
