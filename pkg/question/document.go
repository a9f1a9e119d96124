package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("question: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("question: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Descriptors decodes the payload into its ordered descriptor list.
func (d Document) Descriptors() ([]Descriptor, error) {
	return Decode(d.raw, d.Location(), allowsYAML(d.source))
}

// Decode parses a JSON array of descriptors. When allowYAML is set and the
// payload is not valid JSON, YAML is attempted before giving up.
func Decode(data []byte, location string, allowYAML bool) ([]Descriptor, error) {
	var out []Descriptor
	jsonErr := json.Unmarshal(data, &out)
	if jsonErr == nil {
		return out, nil
	}
	if allowYAML {
		out = nil
		if err := yaml.Unmarshal(data, &out); err == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("question: decode %s: %w", location, jsonErr)
}

func allowsYAML(src Source) bool {
	if src == nil || src.Kind() == SourceKindURL {
		return false
	}
	switch strings.ToLower(path.Ext(src.Location())) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
