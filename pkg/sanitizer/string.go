package sanitizer

import (
	"strings"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower removes leading and trailing whitespace and converts to lowercase.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrimTrailingSlash removes every trailing "/" from a string.
func TrimTrailingSlash(s string) string {
	return strings.TrimRight(s, "/")
}

// StripControlChars removes ASCII control characters that can be used to
// forge log lines or smuggle data into headers and URLs. Tab, line feed and
// carriage return are kept; trailing whitespace is the job of Trim.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, s)
}

// MaxLength truncates a string to the specified maximum length in runes.
// If the string is longer than maxLen, it is cut and "..." is appended.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen]) + "..."
}

// SingleLine converts a multi-line string to a single line by replacing
// line breaks with spaces and normalizing whitespace.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Chain joins string cleaners into one, applied left to right.
func Chain(steps ...func(string) string) func(string) string {
	return func(s string) string {
		for _, step := range steps {
			s = step(s)
		}
		return s
	}
}
