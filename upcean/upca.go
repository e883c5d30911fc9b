package upcean

import (
	"strings"

	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
)

// UPCAReader decodes UPC-A barcodes by delegating to EAN-13: a UPC-A symbol
// is an EAN-13 symbol whose implicit first digit is zero.
type UPCAReader struct {
	ean13 *EAN13Reader
}

// NewUPCAReader creates a new UPC-A reader.
func NewUPCAReader() *UPCAReader {
	return &UPCAReader{ean13: NewEAN13Reader()}
}

// BarcodeFormat returns FormatUPCA.
func (r *UPCAReader) BarcodeFormat() upceango.Format {
	return upceango.FormatUPCA
}

// DecodeRow decodes a UPC-A barcode from a single row.
func (r *UPCAReader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	result, err := r.ean13.DecodeRow(rowNumber, row, opts)
	if err != nil {
		return nil, err
	}
	return maybeReturnUPCAResult(result)
}

// DecodeRowWithStart decodes a UPC-A barcode given an already located start
// guard.
func (r *UPCAReader) DecodeRowWithStart(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	result, err := DecodeRowWithStart(rowNumber, row, startRange, r.ean13, opts)
	if err != nil {
		return nil, err
	}
	return maybeReturnUPCAResult(result)
}

// DecodeMiddle decodes the middle portion by delegating to EAN-13.
func (r *UPCAReader) DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error) {
	return r.ean13.DecodeMiddle(row, startRange, result)
}

func maybeReturnUPCAResult(result *upceango.Result) (*upceango.Result, error) {
	text := result.Text
	if len(text) == 0 || text[0] != '0' {
		return nil, upceango.ErrFormat
	}
	upcaResult := upceango.NewResult(text[1:], result.Points, upceango.FormatUPCA)
	for k, v := range result.Metadata {
		upcaResult.PutMetadata(k, v)
	}
	return upcaResult, nil
}
