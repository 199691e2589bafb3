// Package models defines the cell data structures of a spreadsheet.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormula indicates formula text that does not start with '='.
var ErrInvalidFormula = errors.New("formula must start with '='")

// ContentType tags the kind of value held by a cell.
type ContentType uint8

const (
	// ContentEmpty is a cell with no value.
	ContentEmpty ContentType = iota
	// ContentText is a plain text value stored verbatim.
	ContentText
	// ContentNumeric is a float64 value.
	ContentNumeric
	// ContentFormula is unevaluated formula text starting with '='.
	ContentFormula
)

// String returns the upper-case tag of the content type.
func (t ContentType) String() string {
	switch t {
	case ContentEmpty:
		return "EMPTY"
	case ContentText:
		return "TEXT"
	case ContentNumeric:
		return "NUMERIC"
	case ContentFormula:
		return "FORMULA"
	default:
		return "UNKNOWN"
	}
}

// ParseContentType parses a tag such as "text" or "FORMULA".
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EMPTY":
		return ContentEmpty, nil
	case "TEXT":
		return ContentText, nil
	case "NUMERIC":
		return ContentNumeric, nil
	case "FORMULA":
		return ContentFormula, nil
	}
	return ContentEmpty, fmt.Errorf("unknown content type %q", s)
}

// Content is an immutable cell value. The zero value is empty content.
type Content struct {
	kind  ContentType
	raw   string
	value float64
}

// Empty returns empty content.
func Empty() Content {
	return Content{}
}

// Text returns text content holding s verbatim.
func Text(s string) Content {
	return Content{kind: ContentText, raw: s}
}

// Numeric returns numeric content holding v.
func Numeric(v float64) Content {
	return Content{kind: ContentNumeric, raw: FormatNumber(v), value: v}
}

// NewFormula returns formula content for raw, which must start with '='.
func NewFormula(raw string) (Content, error) {
	if !strings.HasPrefix(raw, "=") {
		return Content{}, fmt.Errorf("%w: %q", ErrInvalidFormula, raw)
	}
	return Content{kind: ContentFormula, raw: raw}, nil
}

// Raw returns the exact text representation of the value.
func (c Content) Raw() string {
	return c.raw
}

// Type returns the content tag.
func (c Content) Type() ContentType {
	return c.kind
}

// IsEmpty reports whether the raw text has zero length.
func (c Content) IsEmpty() bool {
	return len(c.raw) == 0
}

// Value returns the number held by numeric content.
func (c Content) Value() (float64, bool) {
	if c.kind != ContentNumeric {
		return 0, false
	}
	return c.value, true
}

// String implements fmt.Stringer.
func (c Content) String() string {
	return fmt.Sprintf("%s(%q)", c.kind, c.raw)
}

// FormatNumber renders v as the shortest decimal string that parses back to v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Cell is a single addressable slot holding exactly one Content.
type Cell struct {
	content Content
}

// NewCell returns a cell owning c.
func NewCell(c Content) Cell {
	return Cell{content: c}
}

// Content returns the cell's value.
func (c Cell) Content() Content {
	return c.content
}

// SetContent replaces the cell's value.
func (c *Cell) SetContent(content Content) {
	c.content = content
}

// Raw is shorthand for c.Content().Raw().
func (c Cell) Raw() string {
	return c.content.raw
}

// Type is shorthand for c.Content().Type().
func (c Cell) Type() ContentType {
	return c.content.kind
}

// IsEmpty is shorthand for c.Content().IsEmpty().
func (c Cell) IsEmpty() bool {
	return c.content.IsEmpty()
}
