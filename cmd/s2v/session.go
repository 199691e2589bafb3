package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/s2v-go/pkg/s2v"
	"github.com/ukaji3/s2v-go/pkg/s2v/models"
	"github.com/ukaji3/s2v-go/pkg/s2v/parser"
	"github.com/ukaji3/s2v-go/pkg/s2v/storage"
)

// errNoSheet is returned by commands that need a current sheet.
var errNoSheet = errors.New("no spreadsheet: use 'new ROWS COLS' or 'load PATH' first")

const sessionHelp = `Commands:
  new ROWS COLS              create an empty sheet
  set COORD TYPE VALUE       TYPE is text, numeric or formula
  get COORD                  show raw content and type
  print FROM TO              print a region, e.g. print A1 C3 or print A1:C3
  save PATH                  write the sheet as S2V
  load PATH                  read an S2V file
  info                       show size and content counts
  help                       show this help
  exit                       leave the shell
`

// Session holds the state of an interactive shell. Sheet is nil until a
// sheet is created or loaded.
type Session struct {
	Sheet   *s2v.Spreadsheet
	Options s2v.Options
	Out     io.Writer
	Logger  *slog.Logger

	done bool
}

// Done reports whether the exit command was run.
func (s *Session) Done() bool {
	return s.done
}

func (s *Session) log() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Execute runs one command line. Errors are recoverable; the session
// stays usable after any of them.
func (s *Session) Execute(line string) error {
	fields := splitArgs(line, 1)
	if len(fields) == 0 {
		return nil
	}
	cmd := strings.ToLower(fields[0])
	rest := ""
	if len(fields) > 1 {
		rest = fields[1]
	}

	switch cmd {
	case "new":
		return s.newSheet(strings.Fields(rest))
	case "set":
		return s.set(rest)
	case "get":
		return s.get(strings.TrimSpace(rest))
	case "print":
		return s.print(strings.Fields(rest))
	case "save":
		return s.save(strings.TrimSpace(rest))
	case "load":
		return s.load(strings.TrimSpace(rest))
	case "info":
		return s.info()
	case "help", "?":
		fmt.Fprint(s.Out, sessionHelp)
		return nil
	case "exit", "quit":
		s.done = true
		fmt.Fprintln(s.Out, "Exiting.")
		return nil
	}
	return fmt.Errorf("unknown command %q (try 'help')", cmd)
}

func (s *Session) newSheet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: new ROWS COLS")
	}
	rows, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid row count %q", args[0])
	}
	cols, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid column count %q", args[1])
	}

	backing, err := storage.New(s.Options.Storage, rows, cols)
	if err != nil {
		return err
	}
	sheet, err := s2v.NewWithStorage(backing)
	if err != nil {
		return err
	}
	s.Sheet = sheet
	fmt.Fprintf(s.Out, "Created sheet %dx%d\n", rows, cols)
	return nil
}

func (s *Session) set(rest string) error {
	args := splitArgs(rest, 2)
	if len(args) < 2 {
		return errors.New("usage: set COORD TYPE VALUE")
	}
	if s.Sheet == nil {
		return errNoSheet
	}

	row, col, err := parser.ParseCoordinate(args[0])
	if err != nil {
		return err
	}
	kind, err := models.ParseContentType(args[1])
	if err != nil {
		return err
	}
	value := ""
	if len(args) > 2 {
		value = args[2]
	}
	content, err := parseContent(kind, value)
	if err != nil {
		return err
	}

	if err := s.Sheet.SetCell(row, col, content); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Cell %s set.\n", parser.FormatCoordinate(row, col))
	return nil
}

func (s *Session) get(coord string) error {
	if s.Sheet == nil {
		return errNoSheet
	}
	cell, err := s.Sheet.CellAt(coord)
	if err != nil {
		return err
	}
	printCell(s.Out, cell)
	return nil
}

func (s *Session) print(args []string) error {
	if len(args) != 1 && len(args) != 2 {
		return errors.New("usage: print FROM TO")
	}
	if s.Sheet == nil {
		return errNoSheet
	}
	r1, c1, r2, c2, err := parseRegion(args)
	if err != nil {
		return err
	}
	return s.Sheet.PrintRegion(s.Out, r1, c1, r2, c2)
}

func (s *Session) save(path string) error {
	if path == "" {
		return errors.New("usage: save PATH")
	}
	if s.Sheet == nil {
		return errNoSheet
	}
	if err := s2v.Save(s.Sheet, path, s.Options); err != nil {
		return err
	}
	s.log().Debug("saved sheet", "path", path, "rows", s.Sheet.Rows(), "cols", s.Sheet.Cols())
	fmt.Fprintf(s.Out, "Saved to %s\n", path)
	return nil
}

func (s *Session) load(path string) error {
	if path == "" {
		return errors.New("usage: load PATH")
	}

	if s.Sheet == nil {
		sheet, err := s2v.Open(path, s.Options)
		if err != nil {
			return err
		}
		s.Sheet = sheet
	} else if err := s2v.Load(s.Sheet, path, s.Options); err != nil {
		return err
	}

	s.log().Debug("loaded sheet", "path", path, "rows", s.Sheet.Rows(), "cols", s.Sheet.Cols())
	fmt.Fprintf(s.Out, "Loaded sheet from %s\n", path)
	return nil
}

func (s *Session) info() error {
	if s.Sheet == nil {
		return errNoSheet
	}
	printInfo(s.Out, s.Sheet)
	return nil
}

// parseRegion reads a region from either two corner coordinates or a
// single range such as "A1:C3".
func parseRegion(args []string) (r1, c1, r2, c2 int, err error) {
	if len(args) == 1 {
		return parser.ParseRange(args[0])
	}
	if r1, c1, err = parser.ParseCoordinate(args[0]); err != nil {
		return 0, 0, 0, 0, err
	}
	if r2, c2, err = parser.ParseCoordinate(args[1]); err != nil {
		return 0, 0, 0, 0, err
	}
	return r1, c1, r2, c2, nil
}

// parseContent builds cell content of the given kind from user input.
func parseContent(kind models.ContentType, value string) (models.Content, error) {
	switch kind {
	case models.ContentText:
		return models.Text(value), nil
	case models.ContentNumeric:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return models.Content{}, fmt.Errorf("invalid number format %q", value)
		}
		return models.Numeric(v), nil
	case models.ContentFormula:
		return models.NewFormula(value)
	default:
		return models.Empty(), nil
	}
}

func printCell(w io.Writer, cell models.Cell) {
	raw := cell.Raw()
	if cell.IsEmpty() {
		raw = s2v.EmptyMarker
	}
	fmt.Fprintf(w, "Raw content: %s\n", raw)
	fmt.Fprintf(w, "Content type: %s\n", cell.Type())
	if cell.Type() == models.ContentFormula {
		if refs := parser.FormulaReferences(cell.Raw()); len(refs) > 0 {
			fmt.Fprintf(w, "References: %s\n", strings.Join(refs, ", "))
		}
	}
}

func printInfo(w io.Writer, sheet *s2v.Spreadsheet) {
	fmt.Fprintf(w, "Size: %dx%d\n", sheet.Rows(), sheet.Cols())
	fmt.Fprintf(w, "Storage: %s\n", sheet.StorageKind())
	counts := sheet.Count()
	for _, kind := range []models.ContentType{models.ContentText, models.ContentNumeric, models.ContentFormula, models.ContentEmpty} {
		fmt.Fprintf(w, "%s: %d\n", kind, counts[kind])
	}
}

// splitArgs splits off up to n leading words of line and returns them
// followed by the remainder, which keeps its inner spacing.
func splitArgs(line string, n int) []string {
	var out []string
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	for len(out) < n && rest != "" {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			out = append(out, rest)
			return out
		}
		out = append(out, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}
