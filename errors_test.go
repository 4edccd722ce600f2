package mvngrad

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		sentinel error
		checkFn  func(error) bool
	}{
		{
			name:     "InvalidCovariance",
			err:      NewInvalidCovarianceError("Factorize", "Cholesky factorization failed", nil),
			wantType: ErrTypeInvalidCovariance,
			sentinel: ErrInvalidCovariance,
			checkFn:  IsInvalidCovarianceError,
		},
		{
			name:     "Dimension",
			err:      NewDimensionError("DensityGradient", "mean has length 2, want 3"),
			wantType: ErrTypeDimension,
			sentinel: ErrDimensionMismatch,
			checkFn:  IsDimensionError,
		},
		{
			name:     "InvalidArg",
			err:      NewInvalidArgError("DensityGradient", "dst too short"),
			wantType: ErrTypeInvalidArg,
			checkFn:  IsInvalidArgError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e *Error
			if !errors.As(tc.err, &e) {
				t.Fatalf("error is not *Error: %v", tc.err)
			}
			if e.Type != tc.wantType {
				t.Errorf("Type = %v, want %v", e.Type, tc.wantType)
			}
			if !tc.checkFn(tc.err) {
				t.Errorf("type predicate returned false for %v", tc.err)
			}
			if tc.sentinel != nil && !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is against sentinel = false for %v", tc.err)
			}
			if !strings.Contains(tc.err.Error(), e.Op) {
				t.Errorf("message %q does not mention op %q", tc.err.Error(), e.Op)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("lapack: positive definiteness violated")
	err := NewInvalidCovarianceError("Factorize", "factorization failed", cause)
	if !errors.Is(err, cause) {
		t.Errorf("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "caused by") {
		t.Errorf("message %q does not surface the cause", err.Error())
	}
}

func TestErrorTypeString(t *testing.T) {
	for typ, want := range map[ErrorType]string{
		ErrTypeInvalidCovariance: "InvalidCovariance",
		ErrTypeDimension:         "DimensionMismatch",
		ErrTypeInvalidArg:        "InvalidArgument",
		ErrTypeNumerical:         "Numerical",
		ErrorType(99):            "Unknown",
	} {
		if got := typ.String(); got != want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
