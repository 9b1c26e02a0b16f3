package sanitizer

import "strings"

// RedactedMarker replaces secrets removed by RedactSecret.
const RedactedMarker = "[REDACTED]"

// secretPrefixLen is how many leading characters of a secret are treated as
// identifying on their own. Provider keys are often logged truncated.
const secretPrefixLen = 8

// RedactSecret removes every occurrence of secret from s and, independently,
// every occurrence of its leading eight characters. Secrets of eight
// characters or fewer are only matched in full.
func RedactSecret(s, secret string) string {
	if secret == "" || s == "" {
		return s
	}

	s = strings.ReplaceAll(s, secret, RedactedMarker)
	if len(secret) > secretPrefixLen {
		s = strings.ReplaceAll(s, secret[:secretPrefixLen], RedactedMarker)
	}
	return s
}

// Redactor returns a transform suitable for Chain that redacts the given
// secrets in order.
func Redactor(secrets ...string) func(string) string {
	return func(s string) string {
		for _, secret := range secrets {
			s = RedactSecret(s, secret)
		}
		return s
	}
}
