package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// DomainFromEmail returns the part after the last "@", or "" when there is none.
func DomainFromEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

// NormalizedDomain is DomainFromEmail lower-cased and trimmed, for comparisons.
func NormalizedDomain(email string) string {
	return strings.ToLower(strings.TrimSpace(DomainFromEmail(email)))
}
