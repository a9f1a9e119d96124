package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-dynform/pkg/submit"
)

// RenderOptions carry per-request page data that does not live in the form
// tree itself.
type RenderOptions struct {
	// Title is the page heading.
	Title string
	// Intro is markup shown above the form. HTML renderers sanitise it.
	Intro string
	// Action is the address the rendered form posts back to. Empty keeps the
	// current location.
	Action string
	// Hidden fields are emitted inside the form ahead of the generated
	// controls, e.g. the session token.
	Hidden []HiddenField
	// Notice is the outcome of the last submission, presented as a blocking
	// acknowledgment when set.
	Notice *submit.Notice
}

// HiddenField is a hidden name/value pair emitted with the form.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField with a trimmed name.
func Hidden(name, value string) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: value}
}

// SortedHiddenFields drops unnamed fields, keeps the last value per name and
// sorts by name for deterministic output.
func SortedHiddenFields(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(byName))
	for name, value := range byName {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
