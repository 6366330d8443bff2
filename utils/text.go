package utils

import "strings"

// CleanPhone strips everything but digits from a phone number, the format
// the SMS gateway expects. "+7 (912) 345-67-89" becomes "79123456789".
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TruncateRunes shortens s to at most n runes. Counting runes, not bytes,
// keeps multi-byte text from being cut mid-character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
