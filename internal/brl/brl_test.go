package brl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"123,45", "123.45"},
		{"0,00", "0"},
		{"", "0"},
		{"   ", "0"},
		{"nan", "0"},
		{"NaN", "0"},
		{"1.000.000,99", "1000000.99"},
		{"75", "75"},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"input %q: got %s, want %s", tt.in, got, tt.want)
	}
}

func TestParseValue_Malformed(t *testing.T) {
	for _, in := range []string{"abc", "12,34,56", "R$"} {
		_, err := ParseValue(in)
		require.Error(t, err, "input %q should not parse", in)
	}
}

func TestParseStatementValue(t *testing.T) {
	v, kind, err := ParseStatementValue("123,45D")
	require.NoError(t, err)
	assert.Equal(t, Debit, kind)
	assert.True(t, v.Equal(decimal.RequireFromString("123.45")))

	v, kind, err = ParseStatementValue("1.000,00C")
	require.NoError(t, err)
	assert.Equal(t, Credit, kind)
	assert.True(t, v.Equal(decimal.RequireFromString("1000")))

	// Lower-case suffix is accepted.
	_, kind, err = ParseStatementValue("50,00d")
	require.NoError(t, err)
	assert.Equal(t, Debit, kind)
}

func TestParseStatementValue_Malformed(t *testing.T) {
	for _, in := range []string{"", "D", "123,45", "123,45X", "xD"} {
		_, _, err := ParseStatementValue(in)
		require.Error(t, err, "input %q should not parse", in)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100,00"},
		{"123.45", "123,45"},
		{"0", "0,00"},
		{"1234.5", "1234,50"},
		{"1000000.99", "1000000,99"}, // no thousands separator on output
	}
	for _, tt := range tests {
		got := FormatValue(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01/01/2024", "01/01/2024"},
		{"2/1/2024", "02/01/2024"},
		{"31-12-2023", "31/12/2023"},
		{"2024-01-02", "02/01/2024"},
		{"2024-01-02 00:00:00", "02/01/2024"},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, in := range []string{"", "not a date", "32/01/2024"} {
		_, err := ParseDate(in)
		require.Error(t, err, "input %q should not parse", in)
	}
}
