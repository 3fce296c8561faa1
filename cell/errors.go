package cell

import (
	"errors"
	"fmt"
)

// Sentinel errors for cell construction and parsing.
var (
	// ErrCapacityExceeded indicates a builder ran out of bits or references.
	ErrCapacityExceeded = errors.New("cell: capacity exceeded")

	// ErrMalformedInput indicates a reader ran out of bits or references,
	// or the data does not follow the expected layout.
	ErrMalformedInput = errors.New("cell: malformed input")

	// ErrUnsupportedFormat indicates well-formed data in a layout this
	// package does not handle (non-snake prefix, exotic cells, anycast).
	ErrUnsupportedFormat = errors.New("cell: unsupported format")

	// ErrInvalidKey indicates a dictionary key does not fit the key width.
	ErrInvalidKey = errors.New("cell: dictionary key out of range")
)

// CapacityError reports which limit a builder hit.
type CapacityError struct {
	What string // "bits" or "refs"
	Need int
	Left int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cell: capacity exceeded: need %d %s, %d left", e.Need, e.What, e.Left)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// ReadError reports a read past the end of a slice.
type ReadError struct {
	What string // "bits" or "refs"
	Need int
	Left int
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cell: malformed input: read %d %s, %d left", e.Need, e.What, e.Left)
}

func (e *ReadError) Unwrap() error {
	return ErrMalformedInput
}
