// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error categories for PJLink operations.
type ErrorCode int

const (
	// ErrUnreachable indicates the device could not be connected to.
	ErrUnreachable ErrorCode = iota
	// ErrNetwork indicates a transport failure after the connection was established.
	ErrNetwork
	// ErrTimeout indicates a read or write deadline expired or the context was cancelled.
	ErrTimeout
	// ErrAuthentication indicates the device rejected the authentication digest.
	ErrAuthentication
	// ErrProtocol indicates a malformed greeting or response.
	ErrProtocol
	// ErrValidation indicates input validation failure.
	ErrValidation
	// ErrConfiguration indicates a configuration error.
	ErrConfiguration
)

// UnreachableGuidance is the message carried by ErrUnreachable errors.
const UnreachableGuidance = "the projector is not connected: " +
	"1. check the projector IP address in the projector network menu; " +
	"2. check the IP address in the configuration; " +
	"3. check network connections and cabling; " +
	"4. check the network switch"

// String returns the string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrUnreachable:
		return "unreachable"
	case ErrNetwork:
		return "network"
	case ErrTimeout:
		return "timeout"
	case ErrAuthentication:
		return "authentication"
	case ErrProtocol:
		return "protocol"
	case ErrValidation:
		return "validation"
	case ErrConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// PJLinkError provides structured error information with operation context,
// error codes, and message wrapping.
type PJLinkError struct {
	Op      string
	Code    ErrorCode
	Message string
	Err     error
}

// Error returns the formatted error message.
func (e *PJLinkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pjlink %s: %s: %s: %v", e.Code.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("pjlink %s: %s: %s", e.Code.String(), e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *PJLinkError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target error.
func (e *PJLinkError) Is(target error) bool {
	var pjErr *PJLinkError
	if errors.As(target, &pjErr) {
		return e.Code == pjErr.Code && e.Op == pjErr.Op
	}
	return false
}

// NewPJLinkError creates a new PJLinkError with the specified parameters.
func NewPJLinkError(op string, code ErrorCode, message string, err error) *PJLinkError {
	return &PJLinkError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPJLinkError checks if an error is a PJLinkError and optionally matches specific error codes.
// If no codes are provided, returns true for any PJLinkError.
func IsPJLinkError(err error, code ...ErrorCode) bool {
	var pjErr *PJLinkError
	if !errors.As(err, &pjErr) {
		return false
	}

	if len(code) == 0 {
		return true
	}

	for _, c := range code {
		if pjErr.Code == c {
			return true
		}
	}
	return false
}

// GetErrorCode extracts the error code from a PJLinkError.
// Returns -1 if the error is not a PJLinkError.
func GetErrorCode(err error) ErrorCode {
	var pjErr *PJLinkError
	if errors.As(err, &pjErr) {
		return pjErr.Code
	}
	return ErrorCode(-1)
}

func unreachableError(op string, err error) error {
	return NewPJLinkError(op, ErrUnreachable, UnreachableGuidance, err)
}

func networkError(op, message string, err error) error {
	return NewPJLinkError(op, ErrNetwork, message, err)
}

func timeoutError(op, message string, err error) error {
	return NewPJLinkError(op, ErrTimeout, message, err)
}

func authenticationError(op, message string, err error) error {
	return NewPJLinkError(op, ErrAuthentication, message, err)
}

func protocolError(op, message string, err error) error {
	return NewPJLinkError(op, ErrProtocol, message, err)
}

func validationError(op, message string, err error) error {
	return NewPJLinkError(op, ErrValidation, message, err)
}

func configurationError(op, message string, err error) error {
	return NewPJLinkError(op, ErrConfiguration, message, err)
}
