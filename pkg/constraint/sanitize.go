package constraint

import (
	"regexp"
	"strings"
)

var floatingPoint = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)

// Sanitize applies the value sanitization algorithm for type t to raw user
// input. bad is set when the input could not be represented as a value of the
// type (the value is then empty).
func Sanitize(t, raw string) (value string, bad bool) {
	switch NormalizeType(t) {
	case TypeText, TypeSearch, TypeTel, TypePassword:
		return stripNewlines(raw), false
	case TypeEmail, TypeURL:
		return strings.Trim(stripNewlines(raw), asciiWhitespace), false
	case TypeNumber:
		if raw == "" {
			return "", false
		}
		if !floatingPoint.MatchString(raw) {
			return "", true
		}
		return raw, false
	default:
		return raw, false
	}
}

const asciiWhitespace = " \t\n\f\r"

func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
