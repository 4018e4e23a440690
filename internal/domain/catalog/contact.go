package catalog

import "strings"

// DigitsOnly deja solo los dígitos de un teléfono.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
