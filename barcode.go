// Package upceango decodes single rows of binary pixel data into UPC/EAN
// family barcodes (UPC-A, UPC-E, EAN-8, EAN-13 and their EAN-2/EAN-5
// supplements).
package upceango

// Format represents a UPC/EAN family barcode format.
type Format int

const (
	FormatEAN13 Format = iota
	FormatEAN8
	FormatUPCA
	FormatUPCE
)

// String returns the name of the barcode format.
func (f Format) String() string {
	switch f {
	case FormatEAN13:
		return "EAN_13"
	case FormatEAN8:
		return "EAN_8"
	case FormatUPCA:
		return "UPC_A"
	case FormatUPCE:
		return "UPC_E"
	default:
		return "UNKNOWN"
	}
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey int

const (
	MetadataOrientation ResultMetadataKey = iota
	MetadataIssueNumber
	MetadataSuggestedPrice
	MetadataUPCEANExtension
	MetadataSymbologyIdentifier
)

// ResultPoint represents a point of interest in the scanned row.
type ResultPoint struct {
	X, Y float64
}

// Result encapsulates the result of decoding a barcode row.
type Result struct {
	Text     string
	Points   []ResultPoint
	Format   Format
	Metadata map[ResultMetadataKey]interface{}
}

// NewResult creates a new Result with the given text, points, and format.
func NewResult(text string, points []ResultPoint, format Format) *Result {
	return &Result{
		Text:     text,
		Points:   points,
		Format:   format,
		Metadata: make(map[ResultMetadataKey]interface{}),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}
