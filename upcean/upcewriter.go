package upcean

import (
	"fmt"

	upceango "github.com/ericlevine/upceango"
)

const upceCodeWidth = 3 + (7 * 6) + 6 // = 51

// UPCEWriter encodes UPC-E barcodes.
type UPCEWriter struct{}

// NewUPCEWriter creates a new UPC-E writer.
func NewUPCEWriter() *UPCEWriter {
	return &UPCEWriter{}
}

// EncodeContents encodes UPC-E contents into a boolean module pattern.
// Accepts 7 digits (the check digit is computed against the expanded UPC-A
// value) or 8 digits (the check digit is verified).
func (w *UPCEWriter) EncodeContents(contents string) ([]bool, error) {
	length := len(contents)
	switch length {
	case 7:
		check, err := GetStandardChecksum(ConvertUPCEtoUPCA(contents))
		if err != nil {
			return nil, upceango.ErrFormat
		}
		contents += string(rune('0' + check))
	case 8:
		ok, err := CheckStandardChecksum(ConvertUPCEtoUPCA(contents))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("contents do not pass checksum")
		}
	default:
		return nil, fmt.Errorf("requested contents should be 7 or 8 digits long, but got %d", length)
	}

	if err := CheckDigits(contents); err != nil {
		return nil, err
	}

	firstDigit := int(contents[0] - '0')
	if firstDigit != 0 && firstDigit != 1 {
		return nil, fmt.Errorf("number system must be 0 or 1")
	}

	checkDigit := int(contents[7] - '0')
	parities := upceNumSysAndCheckDigitPatterns[firstDigit][checkDigit]

	result := make([]bool, upceCodeWidth)
	pos := AppendPattern(result, 0, StartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit], false)
	}

	AppendPattern(result, pos, upceMiddleEndPattern, false)
	return result, nil
}
