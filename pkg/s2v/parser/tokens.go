package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

// ParseToken classifies an S2V cell token by its shape and rebuilds the
// content it was written from. Zero length is empty, a leading '=' is a
// formula (unescaped), a decimal literal is numeric and anything else is
// text.
func ParseToken(token string) (models.Content, error) {
	if token == "" {
		return models.Empty(), nil
	}

	if strings.HasPrefix(token, "=") {
		if err := CheckBalanced(token); err != nil {
			return models.Content{}, fmt.Errorf("formula %q: %w", token, err)
		}
		return models.NewFormula(UnescapeFormula(token))
	}

	if v, ok := parseDecimal(token); ok {
		return models.Numeric(v), nil
	}

	return models.Text(token), nil
}

// FormatToken returns the S2V token for content. Formula arguments are
// escaped; every other kind is written as its raw text.
func FormatToken(c models.Content) string {
	if c.Type() == models.ContentFormula {
		return EscapeFormula(c.Raw())
	}
	return c.Raw()
}

// parseDecimal accepts [+-]digits[.digits][(e|E)[+-]digits] with at least
// one mantissa digit, and only finite results.
func parseDecimal(s string) (float64, bool) {
	if !isDecimal(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
