package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule identifiers reported on issues.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleEmail     = "email"
	RuleOneOf     = "oneOf"
	RuleMinItems  = "minItems"
	RuleMaxItems  = "maxItems"
	RuleVariant   = "variant"
)

// Check tests a single string value.
type Check struct {
	Rule    string
	Message string
	Test    func(value string) bool
}

// Required fails on empty or whitespace-only values.
func Required(message string) Check {
	return Check{
		Rule:    RuleRequired,
		Message: message,
		Test: func(value string) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// MinLen counts runes, so accented characters count once.
func MinLen(n int, message string) Check {
	return Check{
		Rule:    RuleMinLength,
		Message: message,
		Test: func(value string) bool {
			return utf8.RuneCountInString(value) >= n
		},
	}
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// Email accepts addresses of the form local@domain.tld. Leading dots and
// consecutive dots in the local part are rejected.
func Email(message string) Check {
	return Check{
		Rule:    RuleEmail,
		Message: message,
		Test: func(value string) bool {
			if strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
				return false
			}
			return emailPattern.MatchString(value)
		},
	}
}

// OneOf restricts the value to an enumeration. An empty enumeration accepts
// anything so callers can wire it before the options are fetched.
func OneOf(values []string, message string) Check {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return Check{
		Rule:    RuleOneOf,
		Message: message,
		Test: func(value string) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[value]
			return ok
		},
	}
}
