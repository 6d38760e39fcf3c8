// Package brl parses and renders Brazilian-locale monetary values and
// day-first dates. Amounts use "." as thousands separator and "," as
// decimal separator ("1.234,56"); dates canonicalize to "dd/mm/yyyy" so
// date equality elsewhere is plain string equality.
package brl

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a statement amount by its trailing suffix.
type Kind string

const (
	Debit  Kind = "D"
	Credit Kind = "C"
)

// ParseValue converts a locale-formatted amount to a decimal. Blank cells
// and the literal "nan" mean zero, so an empty discount or fee column
// contributes nothing instead of failing the run.
func ParseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero, nil
	}
	return parseNumber(s)
}

// ParseStatementValue converts a statement amount like "123,45D" into its
// numeric value and debit/credit kind. The suffix must be the trailing
// character; anything other than D or C is a malformed amount.
func ParseStatementValue(s string) (decimal.Decimal, Kind, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return decimal.Zero, "", fmt.Errorf("malformed statement amount %q", s)
	}
	kind := Kind(strings.ToUpper(s[len(s)-1:]))
	if kind != Debit && kind != Credit {
		return decimal.Zero, "", fmt.Errorf("statement amount %q missing D/C suffix", s)
	}
	v, err := parseNumber(strings.TrimSpace(s[:len(s)-1]))
	if err != nil {
		return decimal.Zero, "", err
	}
	return v, kind, nil
}

func parseNumber(s string) (decimal.Decimal, error) {
	n := strings.ReplaceAll(s, ".", "")
	n = strings.ReplaceAll(n, ",", ".")
	v, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return v, nil
}

// FormatValue renders a decimal with exactly two decimal places and ","
// as the decimal separator. No thousands separator.
func FormatValue(v decimal.Decimal) string {
	return strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// dateLayouts are tried in order, day-first forms before ISO.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a day-first date and returns it as "dd/mm/yyyy".
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006"), nil
		}
	}
	return "", fmt.Errorf("parsing date %q: unrecognized format", s)
}
