package constraint

import "strings"

// Input types with special handling. Unknown types behave as TypeText.
const (
	TypeText     = "text"
	TypeSearch   = "search"
	TypeTel      = "tel"
	TypeURL      = "url"
	TypeEmail    = "email"
	TypePassword = "password"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
	TypeHidden   = "hidden"
	TypeRange    = "range"
	TypeColor    = "color"
	TypeSubmit   = "submit"
	TypeReset    = "reset"
	TypeButton   = "button"
	TypeImage    = "image"
	TypeDate     = "date"
	TypeMonth    = "month"
	TypeWeek     = "week"
	TypeTime     = "time"
	TypeDateTime = "datetime-local"
	TypeFile     = "file"
)

var knownTypes = map[string]struct{}{
	TypeText: {}, TypeSearch: {}, TypeTel: {}, TypeURL: {}, TypeEmail: {},
	TypePassword: {}, TypeNumber: {}, TypeCheckbox: {}, TypeRadio: {},
	TypeHidden: {}, TypeRange: {}, TypeColor: {}, TypeSubmit: {}, TypeReset: {},
	TypeButton: {}, TypeImage: {}, TypeDate: {}, TypeMonth: {}, TypeWeek: {},
	TypeTime: {}, TypeDateTime: {}, TypeFile: {},
}

// NormalizeType lower-cases t and maps unknown or empty types to TypeText.
func NormalizeType(t string) string {
	lowered := strings.ToLower(strings.TrimSpace(t))
	if _, ok := knownTypes[lowered]; ok {
		return lowered
	}
	return TypeText
}

// SupportsRequired reports whether the required attribute has any effect on
// inputs of type t.
func SupportsRequired(t string) bool {
	switch NormalizeType(t) {
	case TypeHidden, TypeRange, TypeColor, TypeSubmit, TypeReset, TypeButton, TypeImage:
		return false
	default:
		return true
	}
}

// SupportsPattern reports whether the pattern attribute applies to type t.
func SupportsPattern(t string) bool {
	switch NormalizeType(t) {
	case TypeText, TypeSearch, TypeTel, TypeURL, TypeEmail, TypePassword:
		return true
	default:
		return false
	}
}

// IsCheckable reports whether inputs of type t carry checkedness instead of a
// typed value.
func IsCheckable(t string) bool {
	switch NormalizeType(t) {
	case TypeCheckbox, TypeRadio:
		return true
	default:
		return false
	}
}
