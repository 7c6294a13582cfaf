// Package cli reports errors to the terminal user of the modelshim command.
//
// DisplayError is the single exit point for failures: silent errors print
// nothing, everything else prints one line to standard error.
package cli

import (
	"errors"
	"fmt"
)

// ExitCode is a process exit status.
type ExitCode int

const (
	ExitOK           ExitCode = 0
	ExitGeneralError ExitCode = 1
	ExitUsageError   ExitCode = 2
)

// CLIError is an error meant for the terminal user.
type CLIError struct {
	// Code is the exit status; zero means ExitGeneralError.
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewCLIError returns a CLIError with the given message.
func NewCLIError(message string) *CLIError { return &CLIError{Message: message} }

// WrapCLIError returns a CLIError carrying err as its cause.
func WrapCLIError(message string, err error) *CLIError {
	return &CLIError{Message: message, Err: err}
}

// SilentCLIError fails the command without printing anything.
type SilentCLIError struct {
	CLIError
}

// NewSilentCLIError wraps err; the message is kept for callers that log it.
func NewSilentCLIError(err error) *SilentCLIError {
	return &SilentCLIError{CLIError: CLIError{Err: err}}
}

// Unwrap exposes the embedded CLIError, so errors.As finds a *CLIError.
func (e *SilentCLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return &e.CLIError
}

func (e *SilentCLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.CLIError.Error()
}

// Silent marks the error as one DisplayError must not print.
func (e *SilentCLIError) Silent() bool { return true }

type silencer interface {
	Silent() bool
}

// IsSilent reports whether err, or any error it wraps, asks to stay silent.
func IsSilent(err error) bool {
	var s silencer
	return errors.As(err, &s) && s.Silent()
}

// ExitCodeOf maps err to a process exit status.
func ExitCodeOf(err error) int {
	if err == nil {
		return int(ExitOK)
	}
	var ce *CLIError
	if errors.As(err, &ce) && ce.Code != 0 {
		return int(ce.Code)
	}
	return int(ExitGeneralError)
}
