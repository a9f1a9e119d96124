package question

// TypeRadio marks a grouped control. Every other type renders as a single
// input configured with that type.
const TypeRadio = "radio"

// Option is one choice inside a radio group.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Descriptor describes one form field or radio group as delivered by the
// schema source.
type Descriptor struct {
	Type     string   `json:"type" yaml:"type"`
	Name     string   `json:"name" yaml:"name"`
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Legend   string   `json:"legend,omitempty" yaml:"legend,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern  string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsGroup reports whether the descriptor renders as a radio group.
func (d Descriptor) IsGroup() bool {
	return d.Type == TypeRadio
}

// Prompt returns the human readable text for the descriptor: the legend for
// groups, the label otherwise.
func (d Descriptor) Prompt() string {
	if d.IsGroup() {
		return d.Legend
	}
	return d.Label
}

// Answer is a single submitted value keyed by the field name.
type Answer struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
