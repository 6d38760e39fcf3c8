// Package cnpj normalizes and validates the CNPJ identifiers that key
// company registries on disk.
package cnpj

import (
	"fmt"
	"strings"
)

// Normalize strips everything but digits from a CNPJ string.
// "12.345.678/0001-95" -> "12345678000195"
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Valid reports whether s is a well-formed CNPJ: 14 digits with correct
// check digits and not a single repeated digit.
func Valid(s string) bool {
	d := Normalize(s)
	if len(d) != 14 {
		return false
	}

	same := true
	for i := 1; i < 14; i++ {
		if d[i] != d[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	return checkDigit(d, 12) == int(d[12]-'0') && checkDigit(d, 13) == int(d[13]-'0')
}

// Format renders a normalized CNPJ as "00.000.000/0000-00". Inputs that
// are not 14 digits come back unchanged.
func Format(s string) string {
	d := Normalize(s)
	if len(d) != 14 {
		return s
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// checkDigit computes the modulus-11 check digit over the first n digits.
func checkDigit(d string, n int) int {
	weight := 2
	sum := 0
	for i := n - 1; i >= 0; i-- {
		sum += int(d[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
