package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientData means the bar series is too short for a requested
// indicator window. Not retryable; surfaced to the caller as-is.
var ErrInsufficientData = errors.New("insufficient bar data")

// ErrInvalidData means a bar carries non-finite or negative OHLCV fields.
var ErrInvalidData = errors.New("invalid bar data")

// CalculationError wraps an unexpected arithmetic fault (NaN/Inf
// propagation) from the indicator or risk computation.
type CalculationError struct {
	Op  string
	Err error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation error in %s: %v", e.Op, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError wraps err with the failing operation name.
func NewCalculationError(op string, err error) *CalculationError {
	return &CalculationError{Op: op, Err: err}
}
