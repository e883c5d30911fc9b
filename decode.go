package upceango

// DecodeOptions configures row decoding behavior. A nil *DecodeOptions is
// valid and means no restrictions.
type DecodeOptions struct {
	// PossibleFormats limits which formats to look for.
	PossibleFormats []Format

	// AllowedEANExtensions restricts the allowed EAN extension lengths
	// (2 and/or 5). When set, a decode without a matching extension fails.
	AllowedEANExtensions []int
}
