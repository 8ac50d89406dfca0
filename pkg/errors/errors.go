// SPDX-License-Identifier: Apache-2.0
// Package errors provides typed errors with codes for the orchestrator and its drivers.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies orchestrator errors for logging and metrics.
type ErrorCode string

const (
	// CodeInternal indicates an internal system error.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeInvalidInput indicates the input was invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeNotFound indicates a role or resource was not found.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeConfig indicates the configuration could not be loaded or is invalid.
	CodeConfig ErrorCode = "CONFIG_ERROR"
)

// OrchestratorError is a typed error with context for observability.
// It implements the error interface and can be unwrapped with errors.As().
type OrchestratorError struct {
	Code        ErrorCode
	Message     string
	Err         error
	Context     map[string]interface{}
	Recoverable bool
}

// Error implements the error interface.
func (e *OrchestratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *OrchestratorError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements json.Marshaler for structured logging.
func (e *OrchestratorError) MarshalJSON() ([]byte, error) {
	out := struct {
		Message     string                 `json:"message"`
		Code        string                 `json:"code"`
		Err         string                 `json:"error,omitempty"`
		Context     map[string]interface{} `json:"context,omitempty"`
		Recoverable bool                   `json:"recoverable"`
	}{
		Message:     e.Error(),
		Code:        string(e.Code),
		Context:     e.Context,
		Recoverable: e.Recoverable,
	}
	if e.Err != nil {
		out.Err = e.Err.Error()
	}
	return json.Marshal(out)
}

// New creates a new OrchestratorError with the given code, message, and cause.
func New(code ErrorCode, msg string, cause error) *OrchestratorError {
	return &OrchestratorError{
		Code:    code,
		Message: msg,
		Err:     cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *OrchestratorError) WithContext(key string, value interface{}) *OrchestratorError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithRecoverable sets whether the error can be recovered from.
func (e *OrchestratorError) WithRecoverable(recoverable bool) *OrchestratorError {
	e.Recoverable = recoverable
	return e
}

// As finds the first OrchestratorError in err's chain.
// Errors of any other type are wrapped as CodeInternal.
func As(err error) *OrchestratorError {
	if err == nil {
		return nil
	}
	var oe *OrchestratorError
	if stderrors.As(err, &oe) {
		return oe
	}
	return New(CodeInternal, "wrapped error", err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var oe *OrchestratorError
	if !stderrors.As(err, &oe) {
		return false
	}
	return oe.Code == code
}

// RecoverableString returns "true" or "false" for metric attributes.
func (e *OrchestratorError) RecoverableString() string {
	if e.Recoverable {
		return "true"
	}
	return "false"
}
