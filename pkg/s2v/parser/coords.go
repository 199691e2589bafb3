// Package parser provides the text codecs used by S2V: A1 coordinates,
// formula argument escaping and token classification.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate indicates a malformed coordinate token.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

const maxColumn = math.MaxInt32

// ParseCoordinate parses a token such as "A1" or "aa10" into 1-based row and
// column indices. The token must be letters followed by digits with nothing
// else around them.
func ParseCoordinate(s string) (row, col int, err error) {
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty coordinate", ErrInvalidCoordinate)
	}

	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: %q has no column letters", ErrInvalidCoordinate, s)
	}
	if i == len(s) {
		return 0, 0, fmt.Errorf("%w: %q has no row number", ErrInvalidCoordinate, s)
	}

	colPart, rowPart := s[:i], s[i:]
	for j := 0; j < len(rowPart); j++ {
		if rowPart[j] < '0' || rowPart[j] > '9' {
			return 0, 0, fmt.Errorf("%w: %q has a malformed row number", ErrInvalidCoordinate, s)
		}
	}

	col, err = ColumnIndex(colPart)
	if err != nil {
		return 0, 0, err
	}

	row64, err := strconv.ParseInt(rowPart, 10, 32)
	if err != nil || row64 < 1 {
		return 0, 0, fmt.Errorf("%w: row %q out of range", ErrInvalidCoordinate, rowPart)
	}

	return int(row64), col, nil
}

// ParseRange parses a region such as "A1:C3" or "$B$2:$D$9" into its two
// corners. A single coordinate is a one-cell region. Corners are returned
// as written, not normalized.
func ParseRange(s string) (r1, c1, r2, c2 int, err error) {
	s = strings.ReplaceAll(s, "$", "")
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		to = from
	}
	if r1, c1, err = ParseCoordinate(from); err != nil {
		return 0, 0, 0, 0, err
	}
	if r2, c2, err = ParseCoordinate(to); err != nil {
		return 0, 0, 0, 0, err
	}
	return r1, c1, r2, c2, nil
}

// ColumnIndex converts a column label to its 1-based index.
// A=1, B=2, ..., Z=26, AA=27, AZ=52, BA=53, ZZ=702.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidCoordinate)
	}

	label = strings.ToUpper(label)
	result := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column label %q", ErrInvalidCoordinate, label)
		}
		if result > (maxColumn-26)/26 {
			return 0, fmt.Errorf("%w: column label %q out of range", ErrInvalidCoordinate, label)
		}
		result = result*26 + int(ch-'A') + 1
	}
	return result, nil
}

// ColumnLabel converts a 1-based column index to its label. It returns an
// empty string for indices below 1.
func ColumnLabel(index int) string {
	if index < 1 {
		return ""
	}

	var buf [16]byte
	pos := len(buf)
	for index > 0 {
		index--
		pos--
		buf[pos] = byte('A' + index%26)
		index /= 26
	}
	return string(buf[pos:])
}

// FormatCoordinate renders 1-based indices as a coordinate such as "B2".
func FormatCoordinate(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
