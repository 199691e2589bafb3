package parser

import (
	"errors"
	"reflect"
	"testing"
)

func TestEscapeFormula(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"=SUMA(A1;B1;C1)", "=SUMA(A1,B1,C1)"},
		{"=2+3*4", "=2+3*4"},
		{"=IF(A1>0;SUM(B1;B2);0)", "=IF(A1>0,SUM(B1,B2),0)"},
		{"=A1;B1", "=A1;B1"},
		{"=F(A1);G(B1;C1)", "=F(A1);G(B1,C1)"},
		{"=", "="},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EscapeFormula(tt.raw); got != tt.expected {
			t.Errorf("EscapeFormula(%q) = %q, expected %q", tt.raw, got, tt.expected)
		}
	}
}

func TestUnescapeFormula(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"=SUMA(A1,B1,C1)", "=SUMA(A1;B1;C1)"},
		{"=IF(A1>0,SUM(B1,B2),0)", "=IF(A1>0;SUM(B1;B2);0)"},
		{"=A1,B1", "=A1,B1"},
		{"=1+2", "=1+2"},
	}

	for _, tt := range tests {
		if got := UnescapeFormula(tt.token); got != tt.expected {
			t.Errorf("UnescapeFormula(%q) = %q, expected %q", tt.token, got, tt.expected)
		}
	}
}

func TestEscapeUnescapeIdentity(t *testing.T) {
	formulas := []string{
		"=SUMA(A1;B1;C1)",
		"=IF(A1>0;SUM(B1;B2);MAX(C1;C2;C3))",
		"=((A1;B1);(C1))",
		"=NOW()",
		"=A1+B1",
		"=CONCAT(\"x\";\"y\")",
	}

	for _, f := range formulas {
		if err := CheckBalanced(f); err != nil {
			t.Fatalf("fixture %q is not balanced: %v", f, err)
		}
		if got := UnescapeFormula(EscapeFormula(f)); got != f {
			t.Errorf("UnescapeFormula(EscapeFormula(%q)) = %q", f, got)
		}
	}
}

func TestEscapeIsLossyForNestedCommas(t *testing.T) {
	// ',' inside parentheses has no escaped form of its own, so it reads
	// back as ';'. Save refuses such formulas.
	f := "=ROUND(A1,2)"
	if got := UnescapeFormula(EscapeFormula(f)); got != "=ROUND(A1;2)" {
		t.Errorf("UnescapeFormula(EscapeFormula(%q)) = %q, expected %q", f, got, "=ROUND(A1;2)")
	}
	// At depth 0 a ',' is not touched by either direction.
	if got := UnescapeFormula(EscapeFormula("=A1,B1")); got != "=A1,B1" {
		t.Errorf("top-level comma changed to %q", got)
	}
}

func TestCheckBalanced(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"=SUM(A1;B1)", false},
		{"=(1+(2*3))", false},
		{"=1", false},
		{"=SUM(A1;B1", true},
		{"=SUM(A1))", true},
		{"=)(", true},
	}

	for _, tt := range tests {
		err := CheckBalanced(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnbalanced) {
				t.Errorf("CheckBalanced(%q) error = %v, expected ErrUnbalanced", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("CheckBalanced(%q) unexpected error: %v", tt.input, err)
		}
	}
}

func TestFormulaReferences(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"=SUMA(A1;B1;C1)", []string{"A1", "B1", "C1"}},
		{"=A1+$B$2*a1", []string{"A1", "B2"}},
		{"=SUM(A1:B3)", []string{"A1:B3"}},
		{"=2+3*4", nil},
		{"=", nil},
	}

	for _, tt := range tests {
		got := FormulaReferences(tt.raw)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("FormulaReferences(%q) = %v, expected %v", tt.raw, got, tt.expected)
		}
	}
}
