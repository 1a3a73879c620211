package domain

import "regexp"

var (
	// E.164: "+" followed by a nonzero digit and 1-14 more digits.
	e164Regex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	otpRegex  = regexp.MustCompile(`^\d{6}$`)
)

// IsValidE164 reports whether s is an E.164 phone number.
// Callers are responsible for trimming whitespace first.
func IsValidE164(s string) bool {
	return e164Regex.MatchString(s)
}

// IsValidOTP reports whether s is exactly six ASCII digits.
func IsValidOTP(s string) bool {
	return otpRegex.MatchString(s)
}
