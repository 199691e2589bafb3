package s2v

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
	"github.com/ukaji3/s2v-go/pkg/s2v/parser"
	"github.com/ukaji3/s2v-go/pkg/s2v/storage"
)

// Delimiter separates the cells of a row.
const Delimiter = ';'

// maxLineSize bounds a single S2V line held in memory while reading.
const maxLineSize = 64 << 20

// Encode writes sheet as S2V text: one line per row, cells joined by ';'.
// Formula arguments inside parentheses are written with ',' separators.
// Nothing is written if any cell cannot be represented.
func Encode(w io.Writer, sheet *Spreadsheet) error {
	lines, err := encodeLines(sheet)
	if err != nil {
		return err
	}
	return writeLines(w, lines)
}

// Decode reads S2V text into sheet. The text must have exactly as many
// lines and tokens per line as sheet has rows and columns. The sheet is
// only modified when the whole input parses.
func Decode(r io.Reader, sheet *Spreadsheet) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}
	return decodeLines(lines, sheet)
}

// Save writes sheet to path. The file is replaced atomically: on failure
// the previous file, if any, is left untouched.
func Save(sheet *Spreadsheet, path string, opts Options) error {
	enc, err := opts.TextEncoding()
	if err != nil {
		return err
	}
	lines, err := encodeLines(sheet)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, func(w io.Writer) error {
		if enc != nil {
			tw := transform.NewWriter(w, enc.NewEncoder())
			if err := writeLines(tw, lines); err != nil {
				return err
			}
			return tw.Close()
		}
		return writeLines(w, lines)
	})
}

// Load reads the S2V file at path into sheet, replacing its contents.
// Dimensions must match exactly. On any error the sheet is unchanged.
func Load(sheet *Spreadsheet, path string, opts Options) error {
	lines, err := readFile(path, opts)
	if err != nil {
		return err
	}
	return decodeLines(lines, sheet)
}

// Open reads the S2V file at path into a new spreadsheet sized from
// the file: one row per line and as many columns as the first line has
// tokens. Every line must have the same width.
func Open(path string, opts Options) (*Spreadsheet, error) {
	lines, err := readFile(path, opts)
	if err != nil {
		return nil, err
	}

	cols := 0
	if len(lines) > 0 {
		cols = strings.Count(lines[0], string(Delimiter)) + 1
	}
	backing, err := storage.New(opts.Storage, len(lines), cols)
	if err != nil {
		return nil, err
	}
	sheet := &Spreadsheet{storage: backing}
	if err := decodeLines(lines, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func encodeLines(sheet *Spreadsheet) ([]string, error) {
	lines := make([]string, 0, sheet.Rows())
	tokens := make([]string, sheet.Cols())

	for r, cells := range sheet.storage.Rows() {
		c := 0
		for cell := range cells {
			token, err := encodeCell(cell.Content())
			if err != nil {
				return nil, NewFormatError(r+1, c+1, cell.Raw(), err.Error())
			}
			tokens[c] = token
			c++
		}
		lines = append(lines, strings.Join(tokens[:c], string(Delimiter)))
	}
	return lines, nil
}

// encodeCell returns the token for content, refusing content that would
// not read back as the same single token.
func encodeCell(content models.Content) (string, error) {
	switch content.Type() {
	case models.ContentFormula:
		if err := parser.CheckBalanced(content.Raw()); err != nil {
			return "", err
		}
	case models.ContentNumeric:
		if v, _ := content.Value(); math.IsNaN(v) || math.IsInf(v, 0) {
			return "", errors.New("non-finite number cannot be stored in S2V")
		}
	}

	token := parser.FormatToken(content)
	if content.Type() == models.ContentFormula && parser.UnescapeFormula(token) != content.Raw() {
		return "", errors.New("',' inside formula parentheses would read back as ';'")
	}
	if strings.ContainsAny(token, "\r\n") {
		return "", errors.New("line break cannot be stored in S2V")
	}
	if strings.IndexByte(token, Delimiter) >= 0 {
		return "", errors.New("unescaped ';' cannot be stored in S2V")
	}
	return token, nil
}

func decodeLines(lines []string, sheet *Spreadsheet) error {
	rows, cols := sheet.Rows(), sheet.Cols()
	if len(lines) > rows {
		return NewFormatError(rows+1, 0, "", fmt.Sprintf("file has %d lines, sheet has %d rows", len(lines), rows))
	}

	staged := storage.Blank(sheet.storage)
	for i, line := range lines {
		tokens := splitLine(line, cols)
		if len(tokens) != cols {
			return NewFormatError(i+1, 0, "", fmt.Sprintf("found %d cells, sheet has %d columns", len(tokens), cols))
		}

		for j, token := range tokens {
			content, err := parser.ParseToken(token)
			if err != nil {
				return NewFormatError(i+1, j+1, token, err.Error())
			}
			if err := staged.SetCell(i, j, models.NewCell(content)); err != nil {
				return err
			}
		}
	}

	if len(lines) < rows {
		return NewFormatError(len(lines)+1, 0, "", fmt.Sprintf("file has %d lines, sheet has %d rows", len(lines), rows))
	}

	sheet.storage = staged
	return nil
}

func splitLine(line string, cols int) []string {
	if cols == 0 && line == "" {
		return nil
	}
	return strings.Split(line, string(Delimiter))
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading s2v: %w", err)
	}
	return lines, nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func readFile(path string, opts Options) ([]string, error) {
	enc, err := opts.TextEncoding()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewIOError("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}

	lines, err := readLines(r)
	if err != nil {
		return nil, NewIOError("read", path, err)
	}
	return lines, nil
}
