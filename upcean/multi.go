package upcean

import (
	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
)

// MultiFormatReader tries each UPC/EAN symbology in sequence against a row.
// The start guard is located once and shared by every attempt. A UPC-A
// symbol decodes as an EAN-13 with a leading zero and is converted when
// UPC-A is among the requested formats.
type MultiFormatReader struct {
	readers     []MiddleDecoder
	convertUPCA bool
	allowEAN13  bool
}

// NewMultiFormatReader creates a multi-format reader configured by opts.
// With no format restriction it tries EAN-13, EAN-8, and UPC-E.
func NewMultiFormatReader(opts *upceango.DecodeOptions) *MultiFormatReader {
	var readers []MiddleDecoder
	convertUPCA := true
	allowEAN13 := true

	if opts != nil && len(opts.PossibleFormats) > 0 {
		formats := make(map[upceango.Format]bool)
		for _, f := range opts.PossibleFormats {
			formats[f] = true
		}
		if formats[upceango.FormatEAN13] || formats[upceango.FormatUPCA] {
			readers = append(readers, NewEAN13Reader())
		}
		if formats[upceango.FormatEAN8] {
			readers = append(readers, NewEAN8Reader())
		}
		if formats[upceango.FormatUPCE] {
			readers = append(readers, NewUPCEReader())
		}
		convertUPCA = formats[upceango.FormatUPCA]
		allowEAN13 = formats[upceango.FormatEAN13]
	}

	if len(readers) == 0 {
		readers = []MiddleDecoder{
			NewEAN13Reader(),
			NewEAN8Reader(),
			NewUPCEReader(),
		}
	}

	return &MultiFormatReader{
		readers:     readers,
		convertUPCA: convertUPCA,
		allowEAN13:  allowEAN13,
	}
}

// DecodeRow tries each symbology in sequence until one succeeds.
func (r *MultiFormatReader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	startRange, err := FindStartGuardPattern(row)
	if err != nil {
		return nil, err
	}
	for _, reader := range r.readers {
		result, err := DecodeRowWithStart(rowNumber, row, startRange, reader, opts)
		if err != nil {
			continue
		}
		if result.Format == upceango.FormatEAN13 {
			// An EAN-13 result beginning with 0 is a UPC-A symbol.
			if r.convertUPCA && len(result.Text) > 0 && result.Text[0] == '0' {
				if upca, err := maybeReturnUPCAResult(result); err == nil {
					return upca, nil
				}
			}
			// The EAN-13 reader also runs on behalf of UPC-A; a raw EAN-13
			// result only stands when EAN-13 itself was requested.
			if !r.allowEAN13 {
				continue
			}
		}
		return result, nil
	}
	return nil, upceango.ErrNotFound
}
