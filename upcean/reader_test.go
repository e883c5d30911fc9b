package upcean

import (
	"errors"
	"math"
	"testing"

	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
)

// rowFromRuns builds a row from alternating run widths, starting with the
// given color.
func rowFromRuns(runs []int, blackFirst bool) *bitutil.BitArray {
	total := 0
	for _, r := range runs {
		total += r
	}
	row := bitutil.NewBitArray(total)
	pos := 0
	black := blackFirst
	for _, r := range runs {
		if black {
			row.SetRange(pos, pos+r)
		}
		pos += r
		black = !black
	}
	return row
}

func TestRecordPattern(t *testing.T) {
	// white 2, black 3, white 1, black 2, white 4, black 1, white 2
	row := rowFromRuns([]int{2, 3, 1, 2, 4, 1, 2}, false)

	counters := make([]int, 4)
	if err := RecordPattern(row, 0, counters); err != nil {
		t.Fatalf("RecordPattern: %v", err)
	}
	want := []int{2, 3, 1, 2}
	for i := range want {
		if counters[i] != want[i] {
			t.Errorf("counters[%d] = %d, want %d", i, counters[i], want[i])
		}
	}

	// Starting mid-run counts the remainder of that run.
	if err := RecordPattern(row, 3, counters); err != nil {
		t.Fatalf("RecordPattern: %v", err)
	}
	want = []int{2, 1, 2, 4}
	for i := range want {
		if counters[i] != want[i] {
			t.Errorf("counters[%d] = %d, want %d", i, counters[i], want[i])
		}
	}
}

func TestRecordPatternRowEnds(t *testing.T) {
	row := rowFromRuns([]int{2, 3, 1}, false)
	counters := make([]int, 4)
	if err := RecordPattern(row, 0, counters); !errors.Is(err, upceango.ErrNotFound) {
		t.Errorf("RecordPattern on short row = %v, want ErrNotFound", err)
	}
	if err := RecordPattern(row, 6, counters); !errors.Is(err, upceango.ErrNotFound) {
		t.Errorf("RecordPattern past row end = %v, want ErrNotFound", err)
	}
}

func TestRecordPatternInReverse(t *testing.T) {
	row := rowFromRuns([]int{2, 3, 1, 2, 4, 1, 2}, false)
	counters := make([]int, 4)
	if err := RecordPatternInReverse(row, row.Size()-1, counters); err != nil {
		t.Fatalf("RecordPatternInReverse: %v", err)
	}
	// Last four runs ending at the row end, in left-to-right order.
	want := []int{2, 4, 1, 2}
	for i := range want {
		if counters[i] != want[i] {
			t.Errorf("counters[%d] = %d, want %d", i, counters[i], want[i])
		}
	}
}

func TestRecordPatternInReverseTooFewRuns(t *testing.T) {
	row := rowFromRuns([]int{2, 3}, false)
	counters := make([]int, 4)
	if err := RecordPatternInReverse(row, row.Size()-1, counters); !errors.Is(err, upceango.ErrNotFound) {
		t.Errorf("RecordPatternInReverse on short row = %v, want ErrNotFound", err)
	}
}

// Recording in reverse at offset x must produce the reverse of what a
// forward recording yields at the mirrored offset on the reversed row.
func TestRecordPatternReversalRoundTrip(t *testing.T) {
	row := rowFromRuns([]int{2, 3, 1, 2, 4, 1, 2}, false)
	for _, start := range []int{8, 11, 12, 14} {
		reversed := row.Clone()
		reversed.Reverse()
		mirrored := row.Size() - 1 - start

		backward := make([]int, 4)
		if err := RecordPatternInReverse(row, start, backward); err != nil {
			t.Fatalf("RecordPatternInReverse(%d): %v", start, err)
		}
		forward := make([]int, 4)
		if err := RecordPattern(reversed, mirrored, forward); err != nil {
			t.Fatalf("RecordPattern(reversed, %d): %v", mirrored, err)
		}

		for i := range forward {
			if backward[i] != forward[len(forward)-1-i] {
				t.Errorf("start %d: backward = %v, want reverse of forward %v", start, backward, forward)
				break
			}
		}
	}
}

func TestPatternMatchVarianceExactMatch(t *testing.T) {
	if v := PatternMatchVariance([]int{3, 2, 1, 1}, []int{3, 2, 1, 1}, maxIndividualVariance); v != 0 {
		t.Errorf("variance of exact match = %v, want 0", v)
	}
	if v := PatternMatchVariance([]int{9, 6, 3, 3}, []int{3, 2, 1, 1}, maxIndividualVariance); v != 0 {
		t.Errorf("variance of scaled exact match = %v, want 0", v)
	}
}

func TestPatternMatchVarianceScaleInvariance(t *testing.T) {
	counters := []int{4, 2, 1, 1}
	pattern := []int{3, 2, 1, 1}
	base := PatternMatchVariance(counters, pattern, maxIndividualVariance)
	for _, k := range []int{2, 3, 7} {
		scaled := make([]int, len(counters))
		for i, c := range counters {
			scaled[i] = k * c
		}
		got := PatternMatchVariance(scaled, pattern, maxIndividualVariance)
		if math.Abs(got-base) > 1e-9 {
			t.Errorf("variance at scale %d = %v, want %v", k, got, base)
		}
	}
}

func TestPatternMatchVarianceRejectsIndividualOutlier(t *testing.T) {
	// The last counter deviates far beyond maxIndividualVariance units.
	v := PatternMatchVariance([]int{1, 1, 1, 10}, []int{1, 1, 1, 1}, maxIndividualVariance)
	if !math.IsInf(v, 1) {
		t.Errorf("variance = %v, want +Inf", v)
	}
}

func TestPatternMatchVarianceRejectsTooNarrow(t *testing.T) {
	// Fewer observed pixels than pattern units cannot match at any scale.
	v := PatternMatchVariance([]int{1, 0, 1, 0}, []int{3, 2, 1, 1}, maxIndividualVariance)
	if !math.IsInf(v, 1) {
		t.Errorf("variance = %v, want +Inf", v)
	}
}
