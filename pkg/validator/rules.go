package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Number covers the integer and float kinds Between accepts.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Between fails unless lo <= value <= hi.
func Between[T Number](field string, value, lo, hi T) Rule {
	return Condition(field, value >= lo && value <= hi,
		fmt.Sprintf("must be between %v and %v", lo, hi))
}

// InList fails unless value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = fmt.Sprint(a)
	}
	return Condition(field, slices.Contains(allowed, value),
		"must be one of: "+strings.Join(names, ", "))
}

// Matches fails unless re matches value. A nil pattern never matches.
func Matches(field, value string, re *regexp.Regexp, what string) Rule {
	return Rule{
		Check:     func() bool { return re != nil && re.MatchString(value) },
		Violation: Violation{Field: field, Message: "must be a valid " + what},
	}
}

// MatchesIfPresent is Matches with empty values allowed.
func MatchesIfPresent(field, value string, re *regexp.Regexp, what string) Rule {
	r := Matches(field, value, re, what)
	r.Check = func() bool { return value == "" || (re != nil && re.MatchString(value)) }
	return r
}
