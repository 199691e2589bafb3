// Package storage provides fixed-size cell tables that a spreadsheet reads
// and writes through.
package storage

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

// ErrOutOfRange indicates a coordinate or region outside the table.
var ErrOutOfRange = errors.New("out of range")

// Storage is a rectangular table of cells addressed by 0-based indices.
// Dimensions never change after construction and every in-range
// coordinate holds a cell.
type Storage interface {
	RowCount() int
	ColCount() int
	// Cell returns the cell at row, col or ErrOutOfRange.
	Cell(row, col int) (models.Cell, error)
	// SetCell overwrites the cell at row, col or returns ErrOutOfRange.
	SetCell(row, col int, cell models.Cell) error
	// Rows yields each row index with a sequence over that row's cells, in
	// ascending order. Every call starts a fresh traversal.
	Rows() iter.Seq2[int, iter.Seq[models.Cell]]
}

// Blanker is implemented by storages that can allocate an empty table of
// the same backing and size.
type Blanker interface {
	Blank() Storage
}

// Blank returns an empty storage with the dimensions of s, using the same
// backing when s implements Blanker and a Dense table otherwise.
func Blank(s Storage) Storage {
	if b, ok := s.(Blanker); ok {
		return b.Blank()
	}
	d, _ := NewDense(s.RowCount(), s.ColCount())
	return d
}

// Kind returns a short name of the backing of s for diagnostics.
func Kind(s Storage) string {
	switch s.(type) {
	case *Dense:
		return "dense"
	case *Sparse:
		return "sparse"
	default:
		return fmt.Sprintf("%T", s)
	}
}

// New creates an empty storage of the named kind ("dense" or "sparse").
func New(kind string, rows, cols int) (Storage, error) {
	switch kind {
	case "", "dense":
		return NewDense(rows, cols)
	case "sparse":
		return NewSparse(rows, cols)
	}
	return nil, fmt.Errorf("unknown storage kind %q", kind)
}

func checkDims(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("invalid dimensions %dx%d", rows, cols)
	}
	return nil
}

func checkRange(row, col, rows, cols int) error {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return fmt.Errorf("%w: cell (%d, %d) outside %dx%d table", ErrOutOfRange, row, col, rows, cols)
	}
	return nil
}
