package storage

import (
	"iter"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

// Sparse keeps only non-empty cells in a map. Missing entries read as
// empty cells.
type Sparse struct {
	rows  int
	cols  int
	cells map[[2]int]models.Cell
}

// NewSparse creates an empty rows x cols table.
func NewSparse(rows, cols int) (*Sparse, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	return &Sparse{rows: rows, cols: cols, cells: make(map[[2]int]models.Cell)}, nil
}

// RowCount returns the number of rows.
func (s *Sparse) RowCount() int { return s.rows }

// ColCount returns the number of columns.
func (s *Sparse) ColCount() int { return s.cols }

// Cell returns the cell at row, col.
func (s *Sparse) Cell(row, col int) (models.Cell, error) {
	if err := checkRange(row, col, s.rows, s.cols); err != nil {
		return models.Cell{}, err
	}
	return s.cells[[2]int{row, col}], nil
}

// SetCell overwrites the cell at row, col. Storing an empty cell drops the
// entry.
func (s *Sparse) SetCell(row, col int, cell models.Cell) error {
	if err := checkRange(row, col, s.rows, s.cols); err != nil {
		return err
	}
	key := [2]int{row, col}
	if cell.Type() == models.ContentEmpty {
		delete(s.cells, key)
		return nil
	}
	s.cells[key] = cell
	return nil
}

// Len returns the number of stored (non-empty) cells.
func (s *Sparse) Len() int { return len(s.cells) }

// Rows iterates the table row by row, filling gaps with empty cells.
func (s *Sparse) Rows() iter.Seq2[int, iter.Seq[models.Cell]] {
	return func(yield func(int, iter.Seq[models.Cell]) bool) {
		for r := 0; r < s.rows; r++ {
			row := r
			cells := func(yield func(models.Cell) bool) {
				for c := 0; c < s.cols; c++ {
					if !yield(s.cells[[2]int{row, c}]) {
						return
					}
				}
			}
			if !yield(r, cells) {
				return
			}
		}
	}
}

// Blank returns an empty Sparse table of the same size.
func (s *Sparse) Blank() Storage {
	b, _ := NewSparse(s.rows, s.cols)
	return b
}
