// Package s2v models a fixed-size spreadsheet and persists it to the
// semicolon-delimited S2V text format.
package s2v

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultSheetName is the worksheet used for XLSX interchange when none is given.
const DefaultSheetName = "Sheet1"

// Options configures S2V file reading and writing.
type Options struct {
	// Encoding is the IANA name of the file's character encoding.
	// Empty or "UTF-8" means the file is read and written as-is.
	Encoding string
	// Storage is the backing allocated by Open: "dense" (default) or "sparse".
	Storage string
}

// DefaultOptions returns default S2V options.
func DefaultOptions() Options {
	return Options{}
}

// TextEncoding resolves Encoding. It returns nil when no transform is needed.
func (o Options) TextEncoding() (encoding.Encoding, error) {
	name := strings.TrimSpace(o.Encoding)
	if name == "" {
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", o.Encoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", o.Encoding)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// XLSXOptions configures XLSX import and export.
type XLSXOptions struct {
	// SheetName is the worksheet to read or write. Defaults to DefaultSheetName.
	SheetName string
}

// Sheet returns the worksheet name to use.
func (o XLSXOptions) Sheet() string {
	if o.SheetName != "" {
		return o.SheetName
	}
	return DefaultSheetName
}
