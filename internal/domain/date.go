package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage format of every calendar date.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// NormalizeDate validates value and returns it in canonical form.
func NormalizeDate(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", Required(field)
	}
	t, err := ParseDate(trimmed)
	if err != nil {
		return "", Invalid(field, "must be a YYYY-MM-DD date")
	}
	return t.Format(DateLayout), nil
}
