package ir

import (
	"errors"
	"fmt"
)

// Decoding errors.
var (
	// ErrInputIsEmpty is returned for an empty pulse sequence or a frame
	// with too few bits to decode.
	ErrInputIsEmpty = errors.New("input is empty")

	// ErrUnknownProtocol is returned when a frame cannot be attributed to
	// a known protocol variant.
	ErrUnknownProtocol = errors.New("unknown protocol")

	// ErrInsufficientInputData matches every *InsufficientDataError.
	ErrInsufficientInputData = errors.New("insufficient input data")

	// ErrInvalidBitString is returned by ParseBits.
	ErrInvalidBitString = errors.New("invalid bit string")
)

// InsufficientDataError names the first field a payload was too short to fill.
type InsufficientDataError struct {
	// Field is a human-readable field name such as "data1 (NEC)".
	Field string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s (expected %s)", ErrInsufficientInputData, e.Field)
}

// Is reports whether target is ErrInsufficientInputData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientInputData
}
