package stringutil

import "strings"

// Digits strips everything but ASCII digits, so "123.456.789-09" becomes "12345678909".
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
