package s2v

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
	"github.com/ukaji3/s2v-go/pkg/s2v/parser"
	"github.com/ukaji3/s2v-go/pkg/s2v/storage"
)

// EmptyMarker is printed by PrintRegion for cells with no raw text.
const EmptyMarker = "(empty)"

// Spreadsheet is a fixed-size grid addressed with 1-based row and column
// indices. It exclusively owns its storage.
type Spreadsheet struct {
	storage storage.Storage
}

// New creates a rows x cols spreadsheet backed by dense storage.
func New(rows, cols int) (*Spreadsheet, error) {
	s, err := storage.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Spreadsheet{storage: s}, nil
}

// NewWithStorage wraps a pre-built storage. The caller must not keep using s.
func NewWithStorage(s storage.Storage) (*Spreadsheet, error) {
	if s == nil {
		return nil, errors.New("storage required")
	}
	return &Spreadsheet{storage: s}, nil
}

// Rows returns the number of rows.
func (s *Spreadsheet) Rows() int { return s.storage.RowCount() }

// Cols returns the number of columns.
func (s *Spreadsheet) Cols() int { return s.storage.ColCount() }

// StorageKind names the storage backing, e.g. "dense".
func (s *Spreadsheet) StorageKind() string { return storage.Kind(s.storage) }

// SetCell stores content at the 1-based row and column.
func (s *Spreadsheet) SetCell(row, col int, content models.Content) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	return s.storage.SetCell(row-1, col-1, models.NewCell(content))
}

// Cell returns the cell at the 1-based row and column.
func (s *Spreadsheet) Cell(row, col int) (models.Cell, error) {
	if err := s.checkCell(row, col); err != nil {
		return models.Cell{}, err
	}
	return s.storage.Cell(row-1, col-1)
}

// SetCellAt stores content at a coordinate such as "B2".
func (s *Spreadsheet) SetCellAt(coord string, content models.Content) error {
	row, col, err := parser.ParseCoordinate(coord)
	if err != nil {
		return err
	}
	return s.SetCell(row, col, content)
}

// CellAt returns the cell at a coordinate such as "B2".
func (s *Spreadsheet) CellAt(coord string) (models.Cell, error) {
	row, col, err := parser.ParseCoordinate(coord)
	if err != nil {
		return models.Cell{}, err
	}
	return s.Cell(row, col)
}

// PrintRegion writes the raw contents of the inclusive region spanned by
// two corners, in any order. Each row is one line of tab-separated
// [raw] cells; cells with no raw text print as EmptyMarker. Nothing is
// written when the region leaves the sheet.
func (s *Spreadsheet) PrintRegion(w io.Writer, r1, c1, r2, c2 int) error {
	top, bottom := min(r1, r2), max(r1, r2)
	left, right := min(c1, c2), max(c1, c2)
	if top < 1 || left < 1 || bottom > s.Rows() || right > s.Cols() {
		return fmt.Errorf("%w: region %s:%s outside %dx%d sheet", ErrOutOfRange,
			parser.FormatCoordinate(top, left), parser.FormatCoordinate(bottom, right), s.Rows(), s.Cols())
	}

	bw := bufio.NewWriter(w)
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			cell, err := s.storage.Cell(r-1, c-1)
			if err != nil {
				return err
			}
			raw := cell.Raw()
			if raw == "" {
				raw = EmptyMarker
			}
			bw.WriteString("[" + raw + "]")
			if c < right {
				bw.WriteByte('\t')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Count returns the number of cells holding each content type.
func (s *Spreadsheet) Count() map[models.ContentType]int {
	counts := make(map[models.ContentType]int)
	for _, cells := range s.storage.Rows() {
		for cell := range cells {
			counts[cell.Type()]++
		}
	}
	return counts
}

func (s *Spreadsheet) checkCell(row, col int) error {
	if row < 1 || col < 1 || row > s.Rows() || col > s.Cols() {
		return fmt.Errorf("%w: cell %s (row %d, column %d) outside %dx%d sheet",
			ErrOutOfRange, parser.FormatCoordinate(row, col), row, col, s.Rows(), s.Cols())
	}
	return nil
}
