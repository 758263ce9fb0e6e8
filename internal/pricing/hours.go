package pricing

import (
	"regexp"
	"strings"
)

var minutesNotation = regexp.MustCompile(`^(\d+)[.,](\d{1,2})$`)

// ParseHours converts a typed duration into decimal hours.
//
// Accepted notations, first match wins:
//
//	"1:30"          hours and minutes, 1.5
//	"1.30", "1,30"  two digits in 00..59 after the separator are minutes, 1.5
//	"1.5", "0.67"   anything else is decimal hours
//
// A colon form whose minutes fall outside [0,60) keeps the hour part only.
// Empty or unparsable input returns fallback.
func ParseHours(input string, fallback float64) float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return fallback
	}
	s = strings.Join(strings.Fields(s), "")

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		h := CoerceNumber(parts[0], 0)
		m := CoerceNumber(parts[1], 0)
		if m < 0 || m >= 60 {
			return h
		}
		return h + m/60
	}

	if match := minutesNotation.FindStringSubmatch(s); match != nil {
		h := CoerceNumber(match[1], 0)
		m := CoerceNumber(match[2], 0)
		if len(match[2]) == 2 && m >= 0 && m <= 59 {
			return h + m/60
		}
	}

	return CoerceNumber(s, fallback)
}
