package upceango

import "errors"

var (
	// ErrNotFound is returned when no plausible barcode structure is found
	// in the row: run recording exhausted the row, a guard search found no
	// window within tolerance, or a digit matched no pattern.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when structure and digits decoded but the
	// check digit does not verify.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when decoded content violates the required
	// character class or length for its field.
	ErrFormat = errors.New("format error")
)
