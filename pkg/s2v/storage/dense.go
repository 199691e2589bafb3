package storage

import (
	"iter"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

// Dense stores every cell in a row-major 2D slice.
type Dense struct {
	rows  int
	cols  int
	cells [][]models.Cell
}

// NewDense creates a rows x cols table pre-filled with empty cells.
func NewDense(rows, cols int) (*Dense, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}

	cells := make([][]models.Cell, rows)
	for r := range cells {
		cells[r] = make([]models.Cell, cols)
	}
	return &Dense{rows: rows, cols: cols, cells: cells}, nil
}

// RowCount returns the number of rows.
func (d *Dense) RowCount() int { return d.rows }

// ColCount returns the number of columns.
func (d *Dense) ColCount() int { return d.cols }

// Cell returns the cell at row, col.
func (d *Dense) Cell(row, col int) (models.Cell, error) {
	if err := checkRange(row, col, d.rows, d.cols); err != nil {
		return models.Cell{}, err
	}
	return d.cells[row][col], nil
}

// SetCell overwrites the cell at row, col.
func (d *Dense) SetCell(row, col int, cell models.Cell) error {
	if err := checkRange(row, col, d.rows, d.cols); err != nil {
		return err
	}
	d.cells[row][col] = cell
	return nil
}

// Rows iterates the table row by row.
func (d *Dense) Rows() iter.Seq2[int, iter.Seq[models.Cell]] {
	return func(yield func(int, iter.Seq[models.Cell]) bool) {
		for r := 0; r < d.rows; r++ {
			row := d.cells[r]
			cells := func(yield func(models.Cell) bool) {
				for _, cell := range row {
					if !yield(cell) {
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

// Blank returns an empty Dense table of the same size.
func (d *Dense) Blank() Storage {
	b, _ := NewDense(d.rows, d.cols)
	return b
}
