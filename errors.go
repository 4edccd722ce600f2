// Package mvngrad structured error types for precondition reporting
package mvngrad

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Covariance is not positive-definite
	ErrTypeInvalidCovariance ErrorType = iota
	// Shapes of points/mean/covariance disagree
	ErrTypeDimension
	// Invalid argument errors
	ErrTypeInvalidArg
	// Numerical errors during evaluation
	ErrTypeNumerical
)

// Sentinel errors for errors.Is matching. Constructors wrap these so a
// caller can branch on the error class without inspecting the message.
var (
	// ErrInvalidCovariance indicates the covariance matrix admits no
	// Cholesky factorization.
	ErrInvalidCovariance = errors.New("covariance matrix is not positive-definite")

	// ErrDimensionMismatch indicates the shapes of the inputs disagree.
	ErrDimensionMismatch = errors.New("input dimensions disagree")
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mvngrad %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("mvngrad %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidCovariance:
		return "InvalidCovariance"
	case ErrTypeDimension:
		return "DimensionMismatch"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeNumerical:
		return "Numerical"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewInvalidCovarianceError creates an error for a covariance matrix that
// failed to factorize. The sentinel ErrInvalidCovariance is wrapped unless
// a more specific cause is given.
func NewInvalidCovarianceError(op string, message string, err error) error {
	if err == nil {
		err = ErrInvalidCovariance
	}
	return &Error{
		Type:    ErrTypeInvalidCovariance,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewDimensionError creates a shape-disagreement error wrapping
// ErrDimensionMismatch.
func NewDimensionError(op string, message string) error {
	return &Error{
		Type:    ErrTypeDimension,
		Op:      op,
		Message: message,
		Err:     ErrDimensionMismatch,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewNumericalError creates a numerical error
func NewNumericalError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeNumerical,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsInvalidCovarianceError checks if an error reports a non-positive-definite
// covariance
func IsInvalidCovarianceError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrTypeInvalidCovariance
	}
	return false
}

// IsDimensionError checks if an error reports a shape disagreement
func IsDimensionError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrTypeDimension
	}
	return false
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}
