package upcean

import (
	"fmt"

	upceango "github.com/ericlevine/upceango"
)

// Encoder encodes barcode contents into a module pattern, one bool per
// module, true for a bar.
type Encoder interface {
	// EncodeContents encodes the full barcode contents into a boolean array.
	EncodeContents(contents string) ([]bool, error)
}

// AppendPattern appends a pattern of bars/spaces to a boolean array.
// If startColor is true, the first element is a bar (black); otherwise a
// space (white). Returns the total width appended.
func AppendPattern(target []bool, pos int, pattern []int, startColor bool) int {
	color := startColor
	numAdded := 0
	for _, p := range pattern {
		for j := 0; j < p; j++ {
			target[pos] = color
			pos++
			numAdded++
		}
		color = !color
	}
	return numAdded
}

// CheckDigits validates that a string contains only digits.
func CheckDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("contents contain non-digit character: %c", s[i])
		}
	}
	return nil
}

// CheckLength validates the contents length and the check digit. If the
// contents are expectedWithout digits long the check digit is computed and
// appended; at expectedWith digits the trailing check digit is verified.
func CheckLength(contents string, expectedWithout, expectedWith int) (string, error) {
	length := len(contents)
	switch length {
	case expectedWithout:
		check, err := GetStandardChecksum(contents)
		if err != nil {
			return "", upceango.ErrFormat
		}
		contents += string(rune('0' + check))
	case expectedWith:
		ok, err := CheckStandardChecksum(contents)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("contents do not pass checksum")
		}
	default:
		return "", fmt.Errorf("requested contents should be %d or %d digits long, but got %d",
			expectedWithout, expectedWith, length)
	}
	if err := CheckDigits(contents); err != nil {
		return "", err
	}
	return contents, nil
}
