package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/question"
)

// Transformer rewrites descriptors after loading and before rendering.
type Transformer interface {
	Transform(ctx context.Context, descriptors []question.Descriptor) ([]question.Descriptor, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, descriptors []question.Descriptor) ([]question.Descriptor, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, descriptors []question.Descriptor) ([]question.Descriptor, error) {
	if fn == nil {
		return descriptors, nil
	}
	return fn(ctx, descriptors)
}

// PresetTransformer applies declarative overrides keyed by descriptor name.
// Documents are JSON or YAML:
//
//	omit: [internal_note]
//	fields:
//	  first: {label: Given name, required: true, pattern: "[A-Z].*"}
//	  color: {legend: Favourite colour, rename: colour}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Omit   []string              `json:"omit" yaml:"omit"`
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Label    string `json:"label" yaml:"label"`
	Legend   string `json:"legend" yaml:"legend"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Required *bool  `json:"required" yaml:"required"`
	Rename   string `json:"rename" yaml:"rename"`
}

// NewPresetTransformer parses a preset document. Documents starting with a
// brace are read as JSON, anything else as YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	var err error
	if trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &document)
	} else {
		err = yaml.Unmarshal(trimmed, &document)
	}
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform returns a patched copy of descriptors. Patches naming a
// descriptor that is not present are an error.
func (t *PresetTransformer) Transform(ctx context.Context, descriptors []question.Descriptor) ([]question.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	omit := make(map[string]struct{}, len(t.document.Omit))
	for _, name := range t.document.Omit {
		omit[strings.TrimSpace(name)] = struct{}{}
	}

	applied := make(map[string]bool, len(t.document.Fields))
	out := make([]question.Descriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		if _, skip := omit[desc.Name]; skip {
			continue
		}
		if patch, ok := t.document.Fields[desc.Name]; ok {
			applied[desc.Name] = true
			desc = applyPatch(desc, patch)
		}
		out = append(out, desc)
	}

	for name := range t.document.Fields {
		if _, omitted := omit[name]; omitted {
			continue
		}
		if !applied[name] {
			return nil, fmt.Errorf("preset transformer: field %q not found", name)
		}
	}
	return out, nil
}

func applyPatch(desc question.Descriptor, patch fieldPatch) question.Descriptor {
	if patch.Label != "" {
		desc.Label = patch.Label
	}
	if patch.Legend != "" {
		desc.Legend = patch.Legend
	}
	if patch.Pattern != "" {
		desc.Pattern = patch.Pattern
	}
	if patch.Required != nil {
		desc.Required = *patch.Required
	}
	if name := strings.TrimSpace(patch.Rename); name != "" {
		desc.Name = name
	}
	if len(desc.Options) > 0 {
		desc.Options = append([]question.Option(nil), desc.Options...)
	}
	return desc
}
