package submit

import (
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/question"
)

// Serialize collects one answer per input in document order. Radios answer
// with their value only when checked; every other input answers with its
// current value. Answers with an empty value are dropped.
func Serialize(f *form.Form) []question.Answer {
	answers := make([]question.Answer, 0)
	for _, in := range f.Inputs() {
		value := in.Value()
		if in.IsRadio() && !in.Checked() {
			value = ""
		}
		if value == "" {
			continue
		}
		answers = append(answers, question.Answer{Name: in.Name(), Value: value})
	}
	return answers
}
