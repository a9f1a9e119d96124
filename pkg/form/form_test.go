package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/question"
)

func textDescriptor() question.Descriptor {
	return question.Descriptor{Type: "text", Name: "first", ID: "f1", Label: "First", Required: true}
}

func colorDescriptor() question.Descriptor {
	return question.Descriptor{
		Type: "radio", Name: "color", Legend: "Color", Required: true,
		Options: []question.Option{
			{ID: "r1", Value: "red", Label: "Red"},
			{ID: "r2", Value: "blue", Label: "Blue"},
		},
	}
}

func kinds(nodes []form.Node) []form.Kind {
	out := make([]form.Kind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind())
	}
	return out
}

func TestBuild_SingleControl(t *testing.T) {
	f := form.NewHost("")
	desc := textDescriptor()
	desc.Pattern = "[A-Z].*"
	if err := form.Build(f, []question.Descriptor{desc}); err != nil {
		t.Fatalf("build: %v", err)
	}

	inputs := f.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if in.Type() != "text" || in.Name() != "first" || in.ID() != "f1" || !in.Required() || in.Pattern() != "[A-Z].*" {
		t.Fatalf("unexpected input configuration: %+v", in)
	}
	if v, _ := in.Attr(form.AttrAriaRequired); v != "true" {
		t.Fatalf("expected aria-required=true, got %q", v)
	}

	container, ok := f.Children()[0].(*form.Container)
	if !ok {
		t.Fatalf("expected container as first child, got %T", f.Children()[0])
	}
	want := []form.Kind{form.KindLabel, form.KindInput, form.KindErrorSlot}
	if diff := cmp.Diff(want, kinds(container.Children())); diff != "" {
		t.Fatalf("container layout mismatch (-want +got):\n%s", diff)
	}

	label := container.Children()[0].(*form.Label)
	if label.For != "f1" || label.Text != "First" {
		t.Fatalf("unexpected label: %+v", label)
	}

	slot, ok := f.ErrorSlot("f1-error")
	if !ok {
		t.Fatalf("expected error slot f1-error")
	}
	if slot.Visible() {
		t.Fatalf("error slot must start hidden")
	}
	if slot.Text != "Invalid First" {
		t.Fatalf("unexpected error text %q", slot.Text)
	}
	if f.ErrorSlotFor(in) != slot {
		t.Fatalf("expected input to be associated with its slot")
	}
}

func TestBuild_OptionalSingleControlAria(t *testing.T) {
	f := form.NewHost("")
	desc := textDescriptor()
	desc.Required = false
	if err := form.Build(f, []question.Descriptor{desc}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if v, _ := f.Inputs()[0].Attr(form.AttrAriaRequired); v != "false" {
		t.Fatalf("expected aria-required=false, got %q", v)
	}
}

func TestBuild_RadioGroup(t *testing.T) {
	f := form.NewHost("")
	if err := form.Build(f, []question.Descriptor{colorDescriptor()}); err != nil {
		t.Fatalf("build: %v", err)
	}

	container := f.Children()[0].(*form.Container)
	fieldset, ok := container.Children()[0].(*form.Fieldset)
	if !ok {
		t.Fatalf("expected fieldset, got %T", container.Children()[0])
	}
	if fieldset.Legend() == nil || fieldset.Legend().Text != "Color" {
		t.Fatalf("unexpected legend: %+v", fieldset.Legend())
	}

	radios := f.Group("color")
	if len(radios) != 2 {
		t.Fatalf("expected 2 radios, got %d", len(radios))
	}
	for i, want := range []struct{ id, value string }{{"r1", "red"}, {"r2", "blue"}} {
		if radios[i].ID() != want.id || radios[i].Value() != want.value || !radios[i].Required() {
			t.Fatalf("radio %d mismatch: %+v", i, radios[i])
		}
	}

	var labels []string
	form.Walk(fieldset, func(n form.Node) {
		if l, ok := n.(*form.Label); ok {
			labels = append(labels, l.For+"="+l.Text)
		}
	})
	if diff := cmp.Diff([]string{"r1=Red", "r2=Blue"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_InsertsBeforeSentinelInOrder(t *testing.T) {
	f := form.NewHost("Send")
	descs := []question.Descriptor{
		textDescriptor(),
		colorDescriptor(),
		{Type: "email", Name: "email", ID: "e1", Label: "Email"},
	}
	if err := form.Build(f, descs); err != nil {
		t.Fatalf("build: %v", err)
	}

	children := f.Children()
	if len(children) != 4 {
		t.Fatalf("expected 3 containers plus sentinel, got %d", len(children))
	}
	button, ok := f.Sentinel().(*form.Button)
	if !ok || button.Text != "Send" {
		t.Fatalf("sentinel moved or missing: %+v", f.Sentinel())
	}

	var ids []string
	for _, in := range f.Inputs() {
		ids = append(ids, in.ID())
	}
	if diff := cmp.Diff([]string{"f1", "r1", "r2", "e1"}, ids); diff != "" {
		t.Fatalf("input order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NoSentinel(t *testing.T) {
	f := form.New("empty")
	err := form.Build(f, []question.Descriptor{textDescriptor()})
	if !errors.Is(err, form.ErrNoSentinel) {
		t.Fatalf("expected ErrNoSentinel, got %v", err)
	}
}

func TestBuild_MalformedKeepsEarlierFields(t *testing.T) {
	f := form.NewHost("")
	descs := []question.Descriptor{
		textDescriptor(),
		{Type: "radio", Name: "broken", Legend: "Broken"},
		{Type: "email", Name: "email", ID: "e1", Label: "Email"},
	}
	err := form.Build(f, descs)
	var malformed *form.MalformedError
	if !errors.As(err, &malformed) || malformed.Index != 1 {
		t.Fatalf("expected malformed error for descriptor 1, got %v", err)
	}
	if len(f.Inputs()) != 1 {
		t.Fatalf("expected only the first field to be rendered, got %d inputs", len(f.Inputs()))
	}
}

func TestValidate_BlankRequiredField(t *testing.T) {
	f := form.NewHost("")
	if err := form.Build(f, []question.Descriptor{textDescriptor()}); err != nil {
		t.Fatalf("build: %v", err)
	}
	in, _ := f.Input("f1")
	slot, _ := f.ErrorSlot("f1-error")

	in.Blur()
	if !slot.Visible() {
		t.Fatalf("expected blur validation to reveal the error slot")
	}
	if v, ok := in.Attr(form.AttrAriaInvalid); !ok || v != "true" {
		t.Fatalf("expected aria-invalid=true, got %q (%v)", v, ok)
	}

	// Idempotent: a second pass with unchanged state keeps the same display.
	form.Validate(in, slot)
	if !slot.Visible() {
		t.Fatalf("second validation toggled the error slot")
	}

	in.SetValue("Ada")
	in.Blur()
	if slot.Visible() {
		t.Fatalf("expected error slot hidden once valid")
	}
	if _, ok := in.Attr(form.AttrAriaInvalid); ok {
		t.Fatalf("expected aria-invalid cleared")
	}
	form.Validate(in, slot)
	if slot.Visible() {
		t.Fatalf("second validation toggled the error slot")
	}
}

func TestValidate_NilSlot(t *testing.T) {
	in := form.NewInput(form.InputConfig{Type: "text", Name: "x", ID: "x", Required: true})
	form.Validate(in, nil)
	if v, _ := in.Attr(form.AttrAriaInvalid); v != "true" {
		t.Fatalf("expected aria-invalid on input without slot")
	}
}

func TestValidateAll(t *testing.T) {
	f := form.NewHost("")
	if err := form.Build(f, []question.Descriptor{textDescriptor(), colorDescriptor()}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.ValidateAll(f) {
		t.Fatalf("expected empty required fields to be invalid")
	}
	groupSlot, ok := f.ErrorSlot("color-error")
	if !ok || !groupSlot.Visible() || groupSlot.Text != "Invalid Color" {
		t.Fatalf("expected visible group error slot, got %+v", groupSlot)
	}

	in, _ := f.Input("f1")
	in.SetValue("Ada")
	red, _ := f.Input("r1")
	red.SetChecked(true)
	if !form.ValidateAll(f) {
		t.Fatalf("expected form to be valid")
	}
	if groupSlot.Visible() {
		t.Fatalf("expected group slot hidden after selection")
	}
}

func TestRadioSelectionAndReset(t *testing.T) {
	f := form.NewHost("")
	if err := form.Build(f, []question.Descriptor{textDescriptor(), colorDescriptor()}); err != nil {
		t.Fatalf("build: %v", err)
	}
	red, _ := f.Input("r1")
	blue, _ := f.Input("r2")

	red.SetChecked(true)
	blue.SetChecked(true)
	if red.Checked() || !blue.Checked() {
		t.Fatalf("checking a radio must uncheck its siblings")
	}
	if !red.Validity().Valid() {
		t.Fatalf("required group satisfied by sibling selection")
	}

	text, _ := f.Input("f1")
	text.SetValue("Ada")
	text.Blur()

	f.Reset()
	if blue.Checked() || red.Checked() {
		t.Fatalf("reset must uncheck radios")
	}
	if text.Value() != "" {
		t.Fatalf("reset must clear text, got %q", text.Value())
	}
	if blue.Value() != "blue" {
		t.Fatalf("reset must keep radio values, got %q", blue.Value())
	}
}

func TestSubmitDispatch(t *testing.T) {
	f := form.NewHost("")
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit without handlers: %v", err)
	}

	boom := errors.New("boom")
	var calls int
	f.OnSubmit(func(context.Context) error { calls++; return boom })
	f.OnSubmit(func(context.Context) error { calls++; return nil })
	if err := f.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected first handler error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
}
