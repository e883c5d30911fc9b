package upcean

import (
	"strings"

	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
)

const (
	maxAvgVariance        = 0.48
	maxIndividualVariance = 0.7
)

// UPC/EAN guard patterns. These relative widths define the reference
// geometry every observed run window is scored against; changing them would
// misdecode real scanned barcodes.
var (
	// StartEndPattern is the start guard: bar, space, bar.
	StartEndPattern = []int{1, 1, 1}

	// MiddlePattern separates the two halves of the symbol:
	// space, bar, space, bar, space.
	MiddlePattern = []int{1, 1, 1, 1, 1}

	// EndPattern is the end guard, identical in geometry to the start guard.
	EndPattern = []int{1, 1, 1}
)

// upceMiddleEndPattern terminates a UPC-E symbol, which has no second half.
var upceMiddleEndPattern = []int{1, 1, 1, 1, 1, 1}

// LPatterns contains the "odd" or "L" patterns for encoding UPC/EAN digits.
var LPatterns = [10][]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// LAndGPatterns includes both the L and G patterns.
// Indices 0-9 are L patterns, 10-19 are G patterns (reversed L patterns).
var LAndGPatterns [20][]int

func init() {
	for i := 0; i < 10; i++ {
		LAndGPatterns[i] = LPatterns[i]
	}
	for i := 10; i < 20; i++ {
		widths := LPatterns[i-10]
		reversed := make([]int, len(widths))
		for j := 0; j < len(widths); j++ {
			reversed[j] = widths[len(widths)-j-1]
		}
		LAndGPatterns[i] = reversed
	}
}

// MiddleDecoder decodes the payload between the guards for one symbology.
type MiddleDecoder interface {
	// DecodeMiddle decodes the portion of the barcode between the start
	// and end guard patterns. Returns the row offset of the first pixel
	// after the payload; decoded digits are appended to result.
	DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error)

	// BarcodeFormat returns the format this decoder handles.
	BarcodeFormat() upceango.Format
}

// ChecksumValidator lets a symbology replace the standard check digit rule.
type ChecksumValidator interface {
	// CheckChecksum reports nil if the decoded string verifies, ErrChecksum
	// if the check digit fails, or ErrFormat for malformed content.
	CheckChecksum(s string) error
}

// EndDecoder lets a symbology replace how the end guard is located.
type EndDecoder interface {
	// DecodeEnd locates the end guard starting at endStart.
	DecodeEnd(row *bitutil.BitArray, endStart int) ([2]int, error)
}

// DecodeRow decodes a UPC/EAN barcode from a row using the given middle
// decoder. It locates the start guard and then runs the rest of the
// pipeline.
func DecodeRow(rowNumber int, row *bitutil.BitArray, decoder MiddleDecoder, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	startRange, err := FindStartGuardPattern(row)
	if err != nil {
		return nil, err
	}
	return DecodeRowWithStart(rowNumber, row, startRange, decoder, opts)
}

// DecodeRowWithStart decodes a UPC/EAN barcode from a row given an already
// located start guard, so the start search can be done once and shared
// across several symbology decoders. The pipeline runs middle decode, end
// guard location, quiet zone check, checksum validation, and finally the
// extension stage.
func DecodeRowWithStart(rowNumber int, row *bitutil.BitArray, startRange [2]int, decoder MiddleDecoder, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	var result strings.Builder
	endStart, err := decoder.DecodeMiddle(row, startRange, &result)
	if err != nil {
		return nil, err
	}

	endRange, err := decodeEnd(row, endStart, decoder)
	if err != nil {
		return nil, err
	}

	// The symbol must be followed by a quiet zone at least as wide as the
	// end guard.
	end := endRange[1]
	quietEnd := end + (end - endRange[0])
	if quietEnd >= row.Size() || !row.IsRange(end, quietEnd, false) {
		return nil, upceango.ErrNotFound
	}

	resultString := result.String()
	if len(resultString) < 8 {
		return nil, upceango.ErrFormat
	}

	if v, ok := decoder.(ChecksumValidator); ok {
		err = v.CheckChecksum(resultString)
	} else {
		err = checkChecksum(resultString)
	}
	if err != nil {
		return nil, err
	}

	format := decoder.BarcodeFormat()
	left := float64(startRange[1]+startRange[0]) / 2.0
	right := float64(endRange[1]+endRange[0]) / 2.0
	res := upceango.NewResult(
		resultString,
		[]upceango.ResultPoint{
			{X: left, Y: float64(rowNumber)},
			{X: right, Y: float64(rowNumber)},
		},
		format,
	)

	symbologyID := "0"
	if format == upceango.FormatEAN8 {
		symbologyID = "4"
	}
	res.PutMetadata(upceango.MetadataSymbologyIdentifier, "]E"+symbologyID)

	extensionLength := 0
	if ext, extErr := decodeExtension(rowNumber, row, endRange[1]); extErr == nil {
		res.PutMetadata(upceango.MetadataUPCEANExtension, ext.Text)
		for k, v := range ext.Metadata {
			res.PutMetadata(k, v)
		}
		res.Points = append(res.Points, ext.Points...)
		extensionLength = len(ext.Text)
	}

	if opts != nil && len(opts.AllowedEANExtensions) > 0 {
		valid := false
		for _, length := range opts.AllowedEANExtensions {
			if extensionLength == length {
				valid = true
			}
		}
		if !valid {
			return nil, upceango.ErrNotFound
		}
	}

	return res, nil
}

func decodeEnd(row *bitutil.BitArray, endStart int, decoder MiddleDecoder) ([2]int, error) {
	if d, ok := decoder.(EndDecoder); ok {
		return d.DecodeEnd(row, endStart)
	}
	return FindGuardPattern(row, endStart, false, EndPattern)
}

func checkChecksum(s string) error {
	ok, err := CheckStandardChecksum(s)
	if err != nil {
		return err
	}
	if !ok {
		return upceango.ErrChecksum
	}
	return nil
}

// CheckStandardChecksum verifies the UPC/EAN check digit of a digit string.
// Returns ErrFormat if the string is empty or contains a non-digit.
func CheckStandardChecksum(s string) (bool, error) {
	length := len(s)
	if length == 0 {
		return false, upceango.ErrFormat
	}
	check := int(s[length-1] - '0')
	if check < 0 || check > 9 {
		return false, upceango.ErrFormat
	}
	want, err := GetStandardChecksum(s[:length-1])
	if err != nil {
		return false, err
	}
	return want == check, nil
}

// GetStandardChecksum computes the UPC/EAN check digit for a string of
// digits without the check digit itself. Positions counted from the right
// are weighted 3, 1, 3, 1, ...
func GetStandardChecksum(s string) (int, error) {
	length := len(s)
	sum := 0
	for i := length - 1; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return 0, upceango.ErrFormat
		}
		sum += d
	}
	sum *= 3
	for i := length - 2; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return 0, upceango.ErrFormat
		}
		sum += d
	}
	return (1000 - sum) % 10, nil
}

// FindStartGuardPattern locates the start guard: the first bar-space-bar
// window within tolerance that is preceded by a quiet zone at least as wide
// as the guard itself.
func FindStartGuardPattern(row *bitutil.BitArray) ([2]int, error) {
	counters := make([]int, len(StartEndPattern))
	nextStart := 0
	for {
		for i := range counters {
			counters[i] = 0
		}
		startRange, err := findGuardPattern(row, nextStart, false, StartEndPattern, counters)
		if err != nil {
			return [2]int{}, err
		}
		start := startRange[0]
		nextStart = startRange[1]
		quietStart := start - (nextStart - start)
		if quietStart >= 0 && row.IsRange(quietStart, start, false) {
			return startRange, nil
		}
	}
}

// FindGuardPattern slides a run-length window across the row from rowOffset
// and returns the column span of the first window whose variance against
// pattern is within tolerance. whiteFirst selects the color of the first
// run in the window. Returns ErrNotFound if the row is exhausted first.
func FindGuardPattern(row *bitutil.BitArray, rowOffset int, whiteFirst bool, pattern []int) ([2]int, error) {
	return findGuardPattern(row, rowOffset, whiteFirst, pattern, make([]int, len(pattern)))
}

func findGuardPattern(row *bitutil.BitArray, rowOffset int, whiteFirst bool, pattern, counters []int) ([2]int, error) {
	width := row.Size()
	if whiteFirst {
		rowOffset = row.GetNextUnset(rowOffset)
	} else {
		rowOffset = row.GetNextSet(rowOffset)
	}
	counterPosition := 0
	patternStart := rowOffset
	patternLength := len(pattern)
	isWhite := whiteFirst

	for x := rowOffset; x < width; x++ {
		if row.Get(x) != isWhite {
			counters[counterPosition]++
		} else {
			if counterPosition == patternLength-1 {
				if PatternMatchVariance(counters, pattern, maxIndividualVariance) < maxAvgVariance {
					return [2]int{patternStart, x}, nil
				}
				// Drop the leading run pair and keep scanning.
				patternStart += counters[0] + counters[1]
				copy(counters, counters[2:counterPosition+1])
				counters[counterPosition-1] = 0
				counters[counterPosition] = 0
				counterPosition--
			} else {
				counterPosition++
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
	}
	return [2]int{}, upceango.ErrNotFound
}

// FindMiddleGuardPattern locates the middle guard separating the two halves
// of the symbol.
func FindMiddleGuardPattern(row *bitutil.BitArray, rowOffset int) ([2]int, error) {
	return FindGuardPattern(row, rowOffset, true, MiddlePattern)
}

// DecodeDigit attempts to decode a single UPC/EAN-encoded digit at
// rowOffset against the given pattern table. The counters slice fixes the
// window length (four runs for UPC/EAN digits). Returns the best-matching
// table index and the offset of the first pixel beyond the digit, or
// ErrNotFound if even the best match exceeds tolerance.
func DecodeDigit(row *bitutil.BitArray, rowOffset int, patterns [][]int, counters []int) (int, int, error) {
	if err := RecordPattern(row, rowOffset, counters); err != nil {
		return 0, 0, err
	}
	bestVariance := maxAvgVariance
	bestMatch := -1
	for i, pattern := range patterns {
		variance := PatternMatchVariance(counters, pattern, maxIndividualVariance)
		if variance < bestVariance {
			bestVariance = variance
			bestMatch = i
		}
	}
	if bestMatch < 0 {
		return 0, 0, upceango.ErrNotFound
	}
	resultOffset := rowOffset
	for _, c := range counters {
		resultOffset += c
	}
	return bestMatch, resultOffset, nil
}
