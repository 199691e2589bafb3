package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		token    string
		kind     models.ContentType
		expected string
	}{
		{"", models.ContentEmpty, ""},
		{"hello", models.ContentText, "hello"},
		{"42.5", models.ContentNumeric, "42.5"},
		{"-3", models.ContentNumeric, "-3"},
		{"+7.0", models.ContentNumeric, "7"},
		{".5", models.ContentNumeric, "0.5"},
		{"5.", models.ContentNumeric, "5"},
		{"1e3", models.ContentNumeric, "1000"},
		{"1e", models.ContentText, "1e"},
		{"NaN", models.ContentText, "NaN"},
		{"Inf", models.ContentText, "Inf"},
		{"0x10", models.ContentText, "0x10"},
		{"1_000", models.ContentText, "1_000"},
		{"1e999", models.ContentText, "1e999"},
		{" 1", models.ContentText, " 1"},
		{".", models.ContentText, "."},
		{"=SUMA(A1,B1,C1)", models.ContentFormula, "=SUMA(A1;B1;C1)"},
		{"=1", models.ContentFormula, "=1"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseToken(tt.token)
			if err != nil {
				t.Fatalf("ParseToken(%q) unexpected error: %v", tt.token, err)
			}
			if got.Type() != tt.kind {
				t.Errorf("ParseToken(%q) type = %v, expected %v", tt.token, got.Type(), tt.kind)
			}
			if got.Raw() != tt.expected {
				t.Errorf("ParseToken(%q) raw = %q, expected %q", tt.token, got.Raw(), tt.expected)
			}
		})
	}
}

func TestParseTokenRejectsUnbalancedFormula(t *testing.T) {
	for _, token := range []string{"=SUM(A1,B1", "=SUM(A1))", "=)"} {
		if _, err := ParseToken(token); !errors.Is(err, ErrUnbalanced) {
			t.Errorf("ParseToken(%q) error = %v, expected ErrUnbalanced", token, err)
		}
	}
}

func TestFormatToken(t *testing.T) {
	formula, _ := models.NewFormula("=SUMA(A1;B1;C1)")

	tests := []struct {
		content  models.Content
		expected string
	}{
		{models.Empty(), ""},
		{models.Text("a,b"), "a,b"},
		{models.Numeric(42.5), "42.5"},
		{formula, "=SUMA(A1,B1,C1)"},
	}

	for _, tt := range tests {
		if got := FormatToken(tt.content); got != tt.expected {
			t.Errorf("FormatToken(%v) = %q, expected %q", tt.content, got, tt.expected)
		}
	}
}
