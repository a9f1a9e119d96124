package form

import (
	"sort"
	"strconv"

	"github.com/goliatone/go-dynform/pkg/constraint"
)

// Attribute names managed by the renderer and the validator.
const (
	AttrAriaRequired = "aria-required"
	AttrAriaInvalid  = "aria-invalid"
)

// DefaultCheckboxValue is the value of a checkbox configured without one.
const DefaultCheckboxValue = "on"

// InputConfig carries the construction time attributes of an input.
type InputConfig struct {
	Type     string
	Name     string
	ID       string
	Value    string
	Required bool
	Pattern  string
	Checked  bool
}

// Input is an interactive control. Text-like inputs hold a value; radios and
// checkboxes hold checkedness and a fixed value.
type Input struct {
	form *Form

	typ      string
	name     string
	id       string
	pattern  string
	required bool

	value        string
	defaultValue string
	badInput     bool

	checked        bool
	defaultChecked bool

	attrs  map[string]string
	onBlur []func()
}

// NewInput builds a detached input from cfg.
func NewInput(cfg InputConfig) *Input {
	in := &Input{
		typ:            cfg.Type,
		name:           cfg.Name,
		id:             cfg.ID,
		pattern:        cfg.Pattern,
		required:       cfg.Required,
		checked:        cfg.Checked,
		defaultChecked: cfg.Checked,
		attrs:          make(map[string]string),
	}
	if in.Checkable() {
		in.value = cfg.Value
		if in.value == "" && !in.IsRadio() {
			in.value = DefaultCheckboxValue
		}
	} else {
		in.value, in.badInput = constraint.Sanitize(cfg.Type, cfg.Value)
	}
	in.defaultValue = in.value
	return in
}

func (in *Input) Kind() Kind { return KindInput }
func (in *Input) Children() []Node { return nil }

// Type returns the type attribute as configured.
func (in *Input) Type() string { return in.typ }

// Name returns the grouping and submission key.
func (in *Input) Name() string { return in.name }

// ID returns the element identifier.
func (in *Input) ID() string { return in.id }

// Pattern returns the pattern attribute.
func (in *Input) Pattern() string { return in.pattern }

// Required reports the required attribute.
func (in *Input) Required() bool { return in.required }

// Value returns the current value. For radios and checkboxes this is the
// fixed option value regardless of checkedness.
func (in *Input) Value() string { return in.value }

// Checked reports checkedness for radios and checkboxes.
func (in *Input) Checked() bool { return in.checked }

// Checkable reports whether the input is a radio or checkbox.
func (in *Input) Checkable() bool { return constraint.IsCheckable(in.typ) }

// IsRadio reports whether the input belongs to a radio group.
func (in *Input) IsRadio() bool { return constraint.NormalizeType(in.typ) == constraint.TypeRadio }

// SetValue stores user input after type specific sanitization. It is a no-op
// for radios and checkboxes, whose value is fixed.
func (in *Input) SetValue(raw string) {
	if in.Checkable() {
		return
	}
	in.value, in.badInput = constraint.Sanitize(in.typ, raw)
}

// SetChecked changes checkedness. Checking a radio unchecks every other radio
// with the same name in the owning form.
func (in *Input) SetChecked(checked bool) {
	if !in.Checkable() {
		return
	}
	in.checked = checked
	if !checked || !in.IsRadio() || in.form == nil {
		return
	}
	for _, sibling := range in.form.Group(in.name) {
		if sibling != in {
			sibling.checked = false
		}
	}
}

// Attr returns an attribute managed outside the typed fields (ARIA hints).
func (in *Input) Attr(name string) (string, bool) {
	value, ok := in.attrs[name]
	return value, ok
}

// SetAttr sets an attribute.
func (in *Input) SetAttr(name, value string) {
	in.attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (in *Input) RemoveAttr(name string) {
	delete(in.attrs, name)
}

// Attribute is a name/value pair.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attrs returns the extra attributes sorted by name.
func (in *Input) Attrs() []Attribute {
	if len(in.attrs) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(in.attrs))
	for name, value := range in.attrs {
		out = append(out, Attribute{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OnBlur registers fn to run when the input loses focus.
func (in *Input) OnBlur(fn func()) {
	if fn != nil {
		in.onBlur = append(in.onBlur, fn)
	}
}

// Blur signals that the input lost focus.
func (in *Input) Blur() {
	for _, fn := range in.onBlur {
		fn()
	}
}

// Validity evaluates the input's constraints against its current state.
func (in *Input) Validity() constraint.Validity {
	ctrl := constraint.Control{
		Type:     in.typ,
		Value:    in.value,
		Required: in.required,
		Pattern:  in.pattern,
		Checked:  in.checked,
		BadInput: in.badInput,
	}
	if in.IsRadio() {
		ctrl.GroupChecked = in.checked
		if in.form != nil {
			for _, sibling := range in.form.Group(in.name) {
				if sibling.checked {
					ctrl.GroupChecked = true
					break
				}
			}
		}
	}
	return constraint.Evaluate(ctrl)
}

func (in *Input) reset() {
	in.value = in.defaultValue
	in.checked = in.defaultChecked
	in.badInput = false
}

func boolAttr(v bool) string {
	return strconv.FormatBool(v)
}
