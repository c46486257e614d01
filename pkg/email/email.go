package email

import (
	"net/mail"
	"strings"
	"unicode"
)

// DeriveNameFromEmail builds a display name from the local part of an
// address, e.g. "ada.lovelace@uni.edu" becomes "Ada Lovelace".
func DeriveNameFromEmail(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Voter"
	}

	names := make([]string, 0, 2)
	names = append(names, capitalize(parts[0]))
	if len(parts) > 1 {
		names = append(names, capitalize(parts[len(parts)-1]))
	}
	return strings.Join(names, " ")
}

// Normalize lowercases and trims an address and checks it parses.
func Normalize(address string) (string, bool) {
	address = strings.ToLower(strings.TrimSpace(address))
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return "", false
	}
	return address, true
}

// Mask hides most of the local part for logs: "ada@uni.edu" becomes "a**@uni.edu".
func Mask(address string) string {
	at := strings.IndexByte(address, '@')
	if at <= 0 {
		return "***"
	}
	return address[:1] + strings.Repeat("*", at-1) + address[at:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
