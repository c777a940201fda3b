package common

import (
	"net/mail"
	"strings"
)

// IsValidEmail accepts a bare address only, not a "Name <addr>" form.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// IsValidUsername rejects names that git or gh would choke on: blanks and
// anything carrying line breaks.
func IsValidUsername(name string) bool {
	if len(strings.TrimSpace(name)) == 0 {
		return false
	}
	return !strings.ContainsAny(name, "\r\n")
}
