package s2v

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	sheet := mustNew(t, 2, 3)
	_ = sheet.SetCell(1, 1, models.Text("Header"))
	_ = sheet.SetCell(1, 2, models.Numeric(200.5))
	_ = sheet.SetCell(2, 3, mustFormula(t, "=SUM(A2;B2)"))

	if err := ExportXLSX(sheet, path, XLSXOptions{SheetName: "Data"}); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Data", "A1"); v != "Header" {
		t.Errorf("A1 = %q, expected %q", v, "Header")
	}
	if v, _ := f.GetCellValue("Data", "B1"); v != "200.5" {
		t.Errorf("B1 = %q, expected %q", v, "200.5")
	}
	if formula, _ := f.GetCellFormula("Data", "C2"); formula != "SUM(A2,B2)" {
		t.Errorf("C2 formula = %q, expected %q", formula, "SUM(A2,B2)")
	}
}

func TestImportXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Name")
	f.SetCellValue(sheetName, "B1", 100)
	f.SetCellValue(sheetName, "A2", "42")
	f.SetCellFormula(sheetName, "C3", "IF(A1=\"x\",SUM(B1,B2),0)")
	// C3 has no cached value, so only the declared dimension covers it
	f.SetSheetDimension(sheetName, "A1:C3")

	path := filepath.Join(t.TempDir(), "in.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	sheet, err := ImportXLSX(path, XLSXOptions{})
	if err != nil {
		t.Fatalf("ImportXLSX failed: %v", err)
	}
	if sheet.Rows() != 3 || sheet.Cols() != 3 {
		t.Fatalf("dimensions = %dx%d, expected 3x3", sheet.Rows(), sheet.Cols())
	}

	tests := []struct {
		coord string
		raw   string
		kind  models.ContentType
	}{
		{"A1", "Name", models.ContentText},
		{"B1", "100", models.ContentNumeric},
		{"A2", "42", models.ContentText},
		{"C3", "=IF(A1=\"x\";SUM(B1;B2);0)", models.ContentFormula},
		{"B2", "", models.ContentEmpty},
	}
	for _, tt := range tests {
		cell, err := sheet.CellAt(tt.coord)
		if err != nil {
			t.Fatalf("CellAt(%s) failed: %v", tt.coord, err)
		}
		if cell.Raw() != tt.raw || cell.Type() != tt.kind {
			t.Errorf("%s = %v, expected %s(%q)", tt.coord, cell.Content(), tt.kind, tt.raw)
		}
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.xlsx")

	sheet := mustNew(t, 3, 2)
	_ = sheet.SetCell(1, 1, models.Numeric(-1.5))
	_ = sheet.SetCell(2, 2, mustFormula(t, "=MAX(A1;A3)"))
	_ = sheet.SetCell(3, 1, models.Text("end"))

	if err := ExportXLSX(sheet, path, XLSXOptions{}); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	got, err := ImportXLSX(path, XLSXOptions{})
	if err != nil {
		t.Fatalf("ImportXLSX failed: %v", err)
	}
	assertSameCells(t, got, sheet)
}

func TestImportXLSXMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "one.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportXLSX(path, XLSXOptions{SheetName: "Nope"}); err == nil {
		t.Error("ImportXLSX with a missing sheet should fail")
	}
}

func TestImportXLSXIgnoresOversizedDimension(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "x")
	f.SetCellValue("Sheet1", "B2", 3)
	if err := f.SetSheetDimension("Sheet1", "A1:XFD1048576"); err != nil {
		t.Fatalf("SetSheetDimension failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "huge.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	sheet, err := ImportXLSX(path, XLSXOptions{})
	if err != nil {
		t.Fatalf("ImportXLSX failed: %v", err)
	}
	if sheet.Rows() != 2 || sheet.Cols() != 2 {
		t.Errorf("dimensions = %dx%d, expected the populated 2x2", sheet.Rows(), sheet.Cols())
	}
	cell, _ := sheet.CellAt("B2")
	if cell.Raw() != "3" || cell.Type() != models.ContentNumeric {
		t.Errorf("B2 = %v, expected NUMERIC(\"3\")", cell.Content())
	}
}
