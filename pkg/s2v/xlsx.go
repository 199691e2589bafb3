package s2v

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
	"github.com/ukaji3/s2v-go/pkg/s2v/parser"
)

// ExportXLSX writes sheet to an Excel workbook at path. Formulas are
// stored with Excel's ',' argument separator; empty cells are skipped.
func ExportXLSX(sheet *Spreadsheet, path string, opts XLSXOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	name := opts.Sheet()
	if name != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, name); err != nil {
			return fmt.Errorf("naming sheet %q: %w", name, err)
		}
	}

	for r, cells := range sheet.storage.Rows() {
		c := 0
		for cell := range cells {
			c++
			if cell.IsEmpty() {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(c, r+1)
			if err != nil {
				return err
			}
			if err := setXLSXCell(f, name, cellName, cell.Content()); err != nil {
				return fmt.Errorf("writing %s: %w", cellName, err)
			}
		}
	}

	if sheet.Rows() > 0 && sheet.Cols() > 0 {
		last, err := excelize.CoordinatesToCellName(sheet.Cols(), sheet.Rows())
		if err != nil {
			return err
		}
		if err := f.SetSheetDimension(name, "A1:"+last); err != nil {
			return fmt.Errorf("setting dimension: %w", err)
		}
	}

	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}

func setXLSXCell(f *excelize.File, sheetName, cellName string, content models.Content) error {
	switch content.Type() {
	case models.ContentNumeric:
		v, _ := content.Value()
		return f.SetCellFloat(sheetName, cellName, v, -1, 64)
	case models.ContentFormula:
		body := strings.TrimPrefix(parser.EscapeFormula(content.Raw()), "=")
		return f.SetCellFormula(sheetName, cellName, body)
	default:
		return f.SetCellStr(sheetName, cellName, content.Raw())
	}
}

// ImportXLSX reads a worksheet of the Excel workbook at path into a new
// dense spreadsheet sized to the sheet's used range.
func ImportXLSX(path string, opts XLSXOptions) (*Spreadsheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewIOError("open", path, err)
	}
	defer f.Close()

	name := opts.Sheet()
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", name, path)
	}

	rows, cols, err := usedRange(f, name)
	if err != nil {
		return nil, err
	}
	if rows*cols > maxImportCells {
		return nil, fmt.Errorf("sheet %q spans %dx%d cells, more than %d", name, rows, cols, maxImportCells)
	}

	sheet, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			cellName, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			content, err := readXLSXCell(f, name, cellName)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", cellName, err)
			}
			if err := sheet.SetCell(r, c, content); err != nil {
				return nil, err
			}
		}
	}

	return sheet, nil
}

func readXLSXCell(f *excelize.File, sheetName, cellName string) (models.Content, error) {
	formula, err := f.GetCellFormula(sheetName, cellName)
	if err != nil {
		return models.Content{}, err
	}
	if formula != "" {
		raw := "=" + strings.TrimPrefix(formula, "=")
		if err := parser.CheckBalanced(raw); err != nil {
			return models.Content{}, err
		}
		return models.NewFormula(parser.UnescapeFormula(raw))
	}

	value, err := f.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Content{}, err
	}
	if value == "" {
		return models.Empty(), nil
	}

	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return models.Content{}, err
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.Text(value), nil
	}

	// Numbers and anything else are classified by shape, as S2V does.
	return parser.ParseToken(value)
}

// maxImportCells bounds the number of cells ImportXLSX allocates.
const maxImportCells = 1 << 24

// usedRange returns the extent of the worksheet, anchored at A1: the
// populated rows, widened to the declared dimension when that stays
// within maxImportCells. Oversized dimensions are ignored.
func usedRange(f *excelize.File, sheetName string) (rows, cols int, err error) {
	data, err := f.GetRows(sheetName)
	if err != nil {
		return 0, 0, err
	}
	rows = len(data)
	for _, row := range data {
		cols = max(cols, len(row))
	}

	dim, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return 0, 0, err
	}
	if dim == "" {
		return rows, cols, nil
	}
	if _, _, r2, c2, err := parser.ParseRange(dim); err == nil {
		declaredRows, declaredCols := max(rows, r2), max(cols, c2)
		if declaredRows*declaredCols <= maxImportCells {
			rows, cols = declaredRows, declaredCols
		}
	}
	return rows, cols, nil
}
