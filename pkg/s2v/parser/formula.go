package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// ErrUnbalanced indicates a formula whose parentheses do not pair up.
var ErrUnbalanced = errors.New("unbalanced parentheses")

// EscapeFormula rewrites every ';' inside parentheses to ','. A ';' at
// depth 0 and the leading '=' are left as they are.
func EscapeFormula(raw string) string {
	return swapNested(raw, ';', ',')
}

// UnescapeFormula is the inverse of EscapeFormula: every ',' inside
// parentheses becomes ';'.
func UnescapeFormula(token string) string {
	return swapNested(token, ',', ';')
}

// swapNested replaces from with to wherever the parenthesis depth is at
// least one. It is a single left-to-right scan over the bytes of s.
func swapNested(s string, from, to byte) string {
	if strings.IndexByte(s, from) < 0 {
		return s
	}

	b := []byte(s)
	depth := 0
	for i, ch := range b {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case from:
			if depth >= 1 {
				b[i] = to
			}
		}
	}
	return string(b)
}

// CheckBalanced verifies that the parentheses of s never close more than
// they opened and end at depth 0.
func CheckBalanced(s string) error {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected ')' at offset %d", ErrUnbalanced, i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '('", ErrUnbalanced, depth)
	}
	return nil
}

// FormulaReferences lists the cell and range references of a formula in the
// order they appear, without duplicates. The formula is tokenized in its
// escaped form, which uses the comma argument separator efp expects.
func FormulaReferences(raw string) []string {
	body := strings.TrimPrefix(EscapeFormula(raw), "=")
	if body == "" {
		return nil
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse(body)

	var refs []string
	seen := make(map[string]bool)
	for _, token := range tokens {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref := strings.ToUpper(strings.ReplaceAll(token.TValue, "$", ""))
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}
