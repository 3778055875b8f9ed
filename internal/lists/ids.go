package lists

import (
	"regexp"
	"strconv"
	"strings"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// NormalizeIMDbID canonicalizes an IMDb identifier to lowercase
// tt-prefixed form. It returns "" when the value is not an IMDb id.
func NormalizeIMDbID(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if !imdbIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// NormalizeNumericID canonicalizes a TMDb or TVDb identifier: decimal
// digits without leading zeros or surrounding noise. It returns "" when
// the value is not a positive integer.
func NormalizeNumericID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || value <= 0 {
		return ""
	}
	return strconv.FormatInt(value, 10)
}

// FormatNumericID renders an already-numeric identifier for the numeric
// families. Non-positive values mean "absent" and yield "".
func FormatNumericID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
