// Package numbering formats and advances claim numbers CLM-{yyyy}-{nnnn}.
package numbering

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const MaxSequence = 9999

var (
	ErrSequenceExhausted = errors.New("claim number sequence exhausted for year")
	ErrInvalidYear       = errors.New("claim number year out of range")

	claimNoPattern = regexp.MustCompile(`^CLM-(\d{4})-(\d{4})$`)
)

// Prefix is the per-year prefix, e.g. "CLM-2026-".
func Prefix(year int) string {
	return fmt.Sprintf("CLM-%04d-", year)
}

func Format(year, seq int) string {
	return fmt.Sprintf("CLM-%04d-%04d", year, seq)
}

// Parse splits a well-formed claim number; ok is false for anything else.
func Parse(no string) (year, seq int, ok bool) {
	m := claimNoPattern.FindStringSubmatch(no)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return year, seq, true
}

// Next returns the number after last for year. last is the greatest
// existing number with Prefix(year), "" when the year has none. A last
// value that does not parse or belongs to another year restarts at 0001.
func Next(year int, last string) (string, error) {
	if year < 1000 || year > 9999 {
		return "", ErrInvalidYear
	}
	seq := 0
	if y, s, ok := Parse(last); ok && y == year {
		seq = s
	}
	if seq >= MaxSequence {
		return "", fmt.Errorf("%w: %d", ErrSequenceExhausted, year)
	}
	return Format(year, seq+1), nil
}
