// Package upcean decodes single rows of black/white pixels into UPC/EAN
// family barcodes. The primitives in this file are generic over any
// one-dimensional symbology: they turn pixel runs into counters and score
// counters against idealized patterns, independent of barcode scale.
package upcean

import (
	"math"

	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
)

// RowDecoder decodes a single row of a 1D barcode.
type RowDecoder interface {
	// DecodeRow attempts to decode a barcode from a single row.
	DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upceango.DecodeOptions) (*upceango.Result, error)
}

// RecordPattern records the widths of successive runs of black and white
// pixels in a row, starting at the given position. The color of the first
// run is the color of the pixel at start. Returns ErrNotFound if the row
// ends before every counter is filled.
func RecordPattern(row *bitutil.BitArray, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	end := row.Size()
	if start >= end {
		return upceango.ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := 0
	i := start
	for i < end {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition++
			if counterPosition == numCounters {
				break
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i++
	}
	if !(counterPosition == numCounters || (counterPosition == numCounters-1 && i == end)) {
		return upceango.ErrNotFound
	}
	return nil
}

// RecordPatternInReverse records run widths scanning backward from start.
// The first run counted is the one the start pixel lies in, and counters are
// filled from the last slot toward the first, so the result reads in the
// same left-to-right order a forward scan at the mirrored position on the
// reversed row would produce, reversed. Returns ErrNotFound if the row
// begins before every counter is filled.
func RecordPatternInReverse(row *bitutil.BitArray, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	if start < 0 || start >= row.Size() {
		return upceango.ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := numCounters - 1
	i := start
	for i >= 0 {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition--
			if counterPosition < 0 {
				break
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i--
	}
	if !(counterPosition < 0 || (counterPosition == 0 && i < 0)) {
		return upceango.ErrNotFound
	}
	return nil
}

// PatternMatchVariance determines how closely observed counter widths match
// a target pattern of relative widths. Widths are compared as ratios to the
// unit bar width estimated from the window itself, which makes the score
// invariant to barcode scale. Returns the ratio of total variance to the
// total observed width, or +Inf if any individual counter deviates by more
// than maxIndividualVariance pattern units.
func PatternMatchVariance(counters []int, pattern []int, maxIndividualVariance float64) float64 {
	numCounters := len(counters)
	total := 0
	patternLength := 0
	for i := 0; i < numCounters; i++ {
		total += counters[i]
		patternLength += pattern[i]
	}
	if total < patternLength {
		return math.Inf(1)
	}

	unitBarWidth := float64(total) / float64(patternLength)
	maxIndividualVariance *= unitBarWidth

	totalVariance := 0.0
	for i := 0; i < numCounters; i++ {
		counter := float64(counters[i])
		scaledPattern := float64(pattern[i]) * unitBarWidth
		variance := counter - scaledPattern
		if variance < 0 {
			variance = -variance
		}
		if variance > maxIndividualVariance {
			return math.Inf(1)
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}
