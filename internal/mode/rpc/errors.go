// ABOUTME: Standard JSON-RPC error codes and comparison-specific errors
// ABOUTME: Maps engine contract violations onto stable application codes

package rpc

import (
	"errors"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidReq     = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Custom application error codes.
const (
	ErrCodeNoComparison  = -32001
	ErrCodeInvalidAction = -32002
	ErrCodeInvalidGrade  = -32003
	ErrCodeNotReady      = -32004
)

// NewMethodNotFoundError returns an Error for an unknown RPC method.
func NewMethodNotFoundError(method string) *Error {
	return &Error{Code: ErrCodeMethodNotFound, Message: "method not found: " + method}
}

// NewInvalidParamsError returns an Error for invalid method parameters.
func NewInvalidParamsError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidParams, Message: msg}
}

// NewInternalError returns an Error for unexpected server-side failures.
func NewInternalError(msg string) *Error {
	return &Error{Code: ErrCodeInternal, Message: msg}
}

// NewNoComparisonError returns an Error for an unknown comparison handle.
func NewNoComparisonError(id string) *Error {
	return &Error{Code: ErrCodeNoComparison, Message: "no comparison with id " + id}
}

// engineError converts an engine contract violation into an RPC error.
func engineError(err error) *Error {
	var invalidState *engine.InvalidStateError
	if errors.As(err, &invalidState) {
		return &Error{Code: ErrCodeInvalidAction, Message: err.Error()}
	}
	var invalidGrade *scale.InvalidGradeError
	if errors.As(err, &invalidGrade) {
		return &Error{Code: ErrCodeInvalidGrade, Message: err.Error()}
	}
	var notReady *engine.NotReadyError
	if errors.As(err, &notReady) {
		return &Error{Code: ErrCodeNotReady, Message: err.Error()}
	}
	return &Error{Code: ErrCodeInvalidParams, Message: err.Error()}
}
