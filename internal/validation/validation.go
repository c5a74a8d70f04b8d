package validation

import (
	"net/mail"
	"strings"

	"scishare/internal/models"
)

// ValidateEmail checks if a string is a syntactically valid email address
// suitable as an SMTP recipient. Display-name forms ("A <a@b.c>") are
// rejected; the share API wants a bare address.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	if addr.Address != email {
		return false
	}

	// mail.ParseAddress accepts local-only addresses like "user@localhost";
	// require a dot in the domain so typos fail fast.
	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return false
	}

	return true
}

// NormalizeEmail lowercases an email address so history entries compare
// consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateShareMessage checks the optional personal message attached to a
// share. Empty is fine; over-length is rejected before any side effect.
func ValidateShareMessage(message string) (bool, string) {
	if len([]rune(message)) > models.MaxShareMessageLength {
		return false, "message must be 1000 characters or fewer"
	}
	return true, ""
}
