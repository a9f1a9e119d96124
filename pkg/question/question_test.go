package question_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/question"
)

const sampleJSON = `[
  {"type": "text", "name": "first", "id": "f1", "label": "First", "required": true, "pattern": "[A-Za-z]+"},
  {"type": "radio", "name": "color", "legend": "Color", "required": true,
   "options": [{"id": "r1", "value": "red", "label": "Red"}, {"id": "r2", "value": "blue", "label": "Blue"}]}
]`

const sampleYAML = `
- type: email
  name: email
  id: e1
  label: Email
- type: radio
  name: size
  legend: Size
  options:
    - {id: s1, value: s, label: Small}
`

func TestDecodeJSON(t *testing.T) {
	got, err := question.Decode([]byte(sampleJSON), "inline", false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []question.Descriptor{
		{Type: "text", Name: "first", ID: "f1", Label: "First", Required: true, Pattern: "[A-Za-z]+"},
		{
			Type: "radio", Name: "color", Legend: "Color", Required: true,
			Options: []question.Option{
				{ID: "r1", Value: "red", Label: "Red"},
				{ID: "r2", Value: "blue", Label: "Blue"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
	if !got[1].IsGroup() || got[0].IsGroup() {
		t.Fatalf("unexpected IsGroup results")
	}
	if got[1].Prompt() != "Color" || got[0].Prompt() != "First" {
		t.Fatalf("unexpected prompts: %q %q", got[0].Prompt(), got[1].Prompt())
	}
}

func TestDocumentDescriptors_YAMLOnlyForFiles(t *testing.T) {
	doc, err := question.NewDocument(question.SourceFromFile("testdata/questions.yaml"), []byte(sampleYAML))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	descs, err := doc.Descriptors()
	if err != nil {
		t.Fatalf("yaml descriptors: %v", err)
	}
	if len(descs) != 2 || descs[0].ID != "e1" || descs[1].Options[0].Label != "Small" {
		t.Fatalf("unexpected yaml descriptors: %+v", descs)
	}

	remote, err := question.NewDocument(question.MustSourceFromURL("https://example.com/questions.yaml"), []byte(sampleYAML))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if _, err := remote.Descriptors(); err == nil {
		t.Fatalf("expected URL documents to require JSON")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := question.Decode([]byte(`{"type":`), "broken", false); err == nil {
		t.Fatalf("expected malformed JSON to fail")
	}
}

func TestParseSource(t *testing.T) {
	src, err := question.ParseSource("https://example.com/q.json")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if src.Kind() != question.SourceKindURL {
		t.Fatalf("expected url kind, got %s", src.Kind())
	}

	src, err = question.ParseSource("./fixtures/../q.json")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if src.Kind() != question.SourceKindFile || src.Location() != "q.json" {
		t.Fatalf("unexpected file source: %s %s", src.Kind(), src.Location())
	}

	if _, err := question.ParseSource("  "); err == nil {
		t.Fatalf("expected empty source to fail")
	}
}

func TestCheck(t *testing.T) {
	valid := []question.Descriptor{
		{Type: "text", Name: "first", ID: "f1"},
		{Type: "radio", Name: "color", Options: []question.Option{{ID: "r1", Value: "red"}}},
	}
	if err := question.Check(valid); err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}

	invalid := []question.Descriptor{
		{Type: "text", Name: "first", ID: "f1"},
		{Type: "email", Name: "first", ID: "f1"},
		{Type: "radio", Name: "color"},
		{Type: "radio", Name: "size", Options: []question.Option{{ID: "f1", Value: "s"}}},
	}
	err := question.Check(invalid)
	var checkErr *question.CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected CheckError, got %v", err)
	}

	var fields []string
	for _, issue := range checkErr.Issues {
		fields = append(fields, issue.Field)
	}
	want := []string{"name", "id", "options", "options[0].id"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}
}
