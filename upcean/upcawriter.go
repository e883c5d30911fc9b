package upcean

import "fmt"

// UPCAWriter encodes UPC-A barcodes by delegating to EAN-13 with a leading
// zero.
type UPCAWriter struct {
	ean13 *EAN13Writer
}

// NewUPCAWriter creates a new UPC-A writer.
func NewUPCAWriter() *UPCAWriter {
	return &UPCAWriter{ean13: NewEAN13Writer()}
}

// EncodeContents encodes UPC-A contents into a boolean module pattern.
// Accepts 11 digits (the check digit is computed) or 12 digits (the check
// digit is verified).
func (w *UPCAWriter) EncodeContents(contents string) ([]bool, error) {
	length := len(contents)
	if length != 11 && length != 12 {
		return nil, fmt.Errorf("requested contents should be 11 or 12 digits long, but got %d", length)
	}
	return w.ean13.EncodeContents("0" + contents)
}
