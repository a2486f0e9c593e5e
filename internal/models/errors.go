package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the machine-checkable classification attached to every failure
// that escapes the pipeline.
type ErrorKind string

const (
	// ErrValidation: malformed or incomplete job input, rejected before any
	// external call.
	ErrValidation ErrorKind = "validation_error"
	// ErrToolUnavailable: the external media tool is missing entirely.
	ErrToolUnavailable ErrorKind = "tool_unavailable"
	// ErrToolExecution: the external tool ran but failed.
	ErrToolExecution ErrorKind = "tool_execution_failure"
	// ErrRemoteService: a remote text or speech service failed. Only fatal on
	// the premium TTS path; everywhere else it degrades.
	ErrRemoteService ErrorKind = "remote_service_failure"
	// ErrBusy: admission control rejected the job.
	ErrBusy ErrorKind = "server_busy"
)

// ProcessingError carries the error kind plus a human-readable diagnostic,
// including the underlying tool's output when available.
type ProcessingError struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewProcessingError(kind ErrorKind, message, details string) *ProcessingError {
	return &ProcessingError{Kind: kind, Message: message, Details: details}
}

// KindOf returns the classification of err, or empty if err is not a
// ProcessingError.
func KindOf(err error) ErrorKind {
	if pe, ok := errors.Cause(err).(*ProcessingError); ok {
		return pe.Kind
	}
	return ""
}
