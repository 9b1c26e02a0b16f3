package validator

import (
	"fmt"
	"strings"
)

// Violation names the field that failed a rule and the message to report.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) Error() string {
	return v.Message
}

// Rule is a deferred check paired with the violation it reports.
type Rule struct {
	Check     func() bool
	Violation Violation
}

// WithMessage replaces the reported message. Arguments are applied with
// fmt.Sprintf only when present, so literal percent signs survive.
func (r Rule) WithMessage(format string, args ...any) Rule {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	r.Violation.Message = format
	return r
}

// First evaluates rules in order and returns the first violation.
// Rules after a failure are never evaluated.
func First(rules ...Rule) *Violation {
	for _, r := range rules {
		if r.Check() {
			continue
		}
		v := r.Violation
		return &v
	}
	return nil
}

// Condition wraps an already computed result.
func Condition(field string, ok bool, message string) Rule {
	return Rule{
		Check:     func() bool { return ok },
		Violation: Violation{Field: field, Message: message},
	}
}

// Required fails for empty or whitespace-only strings.
func Required(field, value string) Rule {
	return Condition(field, strings.TrimSpace(value) != "", "field is required")
}
