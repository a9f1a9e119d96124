// Package testsupport holds fixtures shared by package tests: forms built from
// descriptors, a schema endpoint and a contract-checking submission sink.
package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/question"
)

// BuildForm renders descriptors into a fresh host form.
func BuildForm(t *testing.T, descs ...question.Descriptor) *form.Form {
	t.Helper()

	f := form.NewHost("")
	if err := form.Build(f, descs); err != nil {
		t.Fatalf("build form: %v", err)
	}
	return f
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
