package form

import (
	"fmt"

	"github.com/goliatone/go-dynform/pkg/question"
)

// ErrorSuffix is appended to an input id to derive its error slot id.
const ErrorSuffix = "-error"

// ErrorSlotID derives the error slot identifier for an input or group id.
func ErrorSlotID(id string) string {
	return id + ErrorSuffix
}

// ErrorText is the fixed message shown for an invalid field.
func ErrorText(prompt string) string {
	return "Invalid " + prompt
}

// MalformedError reports a descriptor rendering could not handle. Fields built
// before it stay in the form.
type MalformedError struct {
	Index  int
	Name   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("form: descriptor %d (%q): %s", e.Index, e.Name, e.Reason)
}

// Build converts descriptors into field containers inserted, in order, before
// the form's sentinel. Single controls are wired to validate on blur.
func Build(f *Form, descriptors []question.Descriptor) error {
	if f == nil {
		return fmt.Errorf("form: form is nil")
	}
	for idx, desc := range descriptors {
		var (
			container *Container
			err       error
		)
		if desc.IsGroup() {
			container, err = buildGroup(f, idx, desc)
		} else {
			container = buildSingle(f, desc)
		}
		if err != nil {
			return err
		}
		if err := f.InsertBeforeSentinel(container); err != nil {
			return err
		}
	}
	return nil
}

func buildGroup(f *Form, idx int, desc question.Descriptor) (*Container, error) {
	if desc.Options == nil {
		return nil, &MalformedError{Index: idx, Name: desc.Name, Reason: "radio group has no options"}
	}

	fieldset := &Fieldset{}
	fieldset.Append(&Legend{Text: desc.Legend})

	slot := &ErrorSlot{ID: ErrorSlotID(desc.Name), Text: ErrorText(desc.Legend)}
	for _, opt := range desc.Options {
		in := NewInput(InputConfig{
			Type:     question.TypeRadio,
			Name:     desc.Name,
			ID:       opt.ID,
			Value:    opt.Value,
			Required: desc.Required,
		})
		fieldset.Append(in, &Label{For: opt.ID, Text: opt.Label})
		f.Associate(in, slot)
	}
	return NewContainer(fieldset, slot), nil
}

func buildSingle(f *Form, desc question.Descriptor) *Container {
	in := NewInput(InputConfig{
		Type:     desc.Type,
		Name:     desc.Name,
		ID:       desc.ID,
		Required: desc.Required,
		Pattern:  desc.Pattern,
	})
	in.SetAttr(AttrAriaRequired, boolAttr(desc.Required))

	slot := &ErrorSlot{ID: ErrorSlotID(desc.ID), Text: ErrorText(desc.Label)}
	f.Associate(in, slot)
	in.OnBlur(func() { Validate(in, slot) })

	return NewContainer(&Label{For: desc.ID, Text: desc.Label}, in, slot)
}
