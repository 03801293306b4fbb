package domain

import "strings"

// NormalizePhone brings a phone number to the +-prefixed international form
// used as the admin key. Telegram hands contacts over without the plus;
// operator-typed numbers come in every imaginable shape.
func NormalizePhone(raw string) string {
	n := strings.TrimSpace(raw)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	if n == "" {
		return ""
	}
	if !strings.HasPrefix(n, "+") {
		n = "+" + n
	}
	return n
}
