package constraint

import (
	"net/url"
	"regexp"
	"sync"
)

// Validity mirrors the ValidityState flags relevant to this package.
type Validity struct {
	ValueMissing    bool
	TypeMismatch    bool
	PatternMismatch bool
	BadInput        bool
}

// Valid reports whether no flag is raised.
func (v Validity) Valid() bool {
	return !v.ValueMissing && !v.TypeMismatch && !v.PatternMismatch && !v.BadInput
}

// Control is the view of an input the engine evaluates.
type Control struct {
	Type     string
	Value    string
	Required bool
	Pattern  string
	Checked  bool

	// GroupChecked is set for radios when any input of the same group is
	// checked.
	GroupChecked bool

	// BadInput carries the flag returned by Sanitize.
	BadInput bool
}

// emailAddress is the "valid email address" production from the HTML
// standard.
var emailAddress = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// Evaluate computes the validity of c.
func Evaluate(c Control) Validity {
	t := NormalizeType(c.Type)
	v := Validity{BadInput: c.BadInput}

	if c.Required && SupportsRequired(t) {
		switch t {
		case TypeRadio:
			v.ValueMissing = !c.GroupChecked
		case TypeCheckbox:
			v.ValueMissing = !c.Checked
		default:
			v.ValueMissing = c.Value == "" && !c.BadInput
		}
	}

	if c.Value == "" {
		return v
	}

	switch t {
	case TypeEmail:
		v.TypeMismatch = !emailAddress.MatchString(c.Value)
	case TypeURL:
		v.TypeMismatch = !isAbsoluteURL(c.Value)
	}

	if c.Pattern != "" && SupportsPattern(t) {
		if re := compilePattern(c.Pattern); re != nil {
			v.PatternMismatch = !re.MatchString(c.Value)
		}
	}
	return v
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != ""
}

var patterns sync.Map

type compiled struct {
	re *regexp.Regexp
}

// compilePattern caches anchored patterns. Invalid patterns cache as nil.
func compilePattern(pattern string) *regexp.Regexp {
	if cached, ok := patterns.Load(pattern); ok {
		return cached.(compiled).re
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		re = nil
	}
	patterns.Store(pattern, compiled{re: re})
	return re
}

// PatternCompiles reports whether pattern is usable by Evaluate.
func PatternCompiles(pattern string) bool {
	return compilePattern(pattern) != nil
}
