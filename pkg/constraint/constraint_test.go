package constraint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/constraint"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		in   constraint.Control
		want constraint.Validity
	}{
		{
			name: "required text empty",
			in:   constraint.Control{Type: "text", Required: true},
			want: constraint.Validity{ValueMissing: true},
		},
		{
			name: "optional text empty ignores pattern",
			in:   constraint.Control{Type: "text", Pattern: "[0-9]+"},
			want: constraint.Validity{},
		},
		{
			name: "pattern is anchored",
			in:   constraint.Control{Type: "text", Pattern: "[0-9]+", Value: "12a"},
			want: constraint.Validity{PatternMismatch: true},
		},
		{
			name: "pattern alternation is anchored as a whole",
			in:   constraint.Control{Type: "tel", Pattern: "a|b", Value: "ab"},
			want: constraint.Validity{PatternMismatch: true},
		},
		{
			name: "pattern match",
			in:   constraint.Control{Type: "text", Pattern: "[0-9]+", Value: "123"},
			want: constraint.Validity{},
		},
		{
			name: "invalid pattern ignored",
			in:   constraint.Control{Type: "text", Pattern: "(?=x)", Value: "anything"},
			want: constraint.Validity{},
		},
		{
			name: "pattern ignored for number",
			in:   constraint.Control{Type: "number", Pattern: "[a-z]+", Value: "12"},
			want: constraint.Validity{},
		},
		{
			name: "email shape",
			in:   constraint.Control{Type: "email", Value: "not-an-email"},
			want: constraint.Validity{TypeMismatch: true},
		},
		{
			name: "email valid",
			in:   constraint.Control{Type: "email", Value: "ada@example.com", Required: true},
			want: constraint.Validity{},
		},
		{
			name: "url requires scheme",
			in:   constraint.Control{Type: "url", Value: "example.com/path"},
			want: constraint.Validity{TypeMismatch: true},
		},
		{
			name: "radio group unchecked",
			in:   constraint.Control{Type: "radio", Required: true, Value: "red"},
			want: constraint.Validity{ValueMissing: true},
		},
		{
			name: "radio group satisfied by sibling",
			in:   constraint.Control{Type: "radio", Required: true, Value: "red", GroupChecked: true},
			want: constraint.Validity{},
		},
		{
			name: "checkbox required",
			in:   constraint.Control{Type: "checkbox", Required: true, Value: "on"},
			want: constraint.Validity{ValueMissing: true},
		},
		{
			name: "required ignored for hidden",
			in:   constraint.Control{Type: "hidden", Required: true},
			want: constraint.Validity{},
		},
		{
			name: "bad number input",
			in:   constraint.Control{Type: "number", Required: true, BadInput: true},
			want: constraint.Validity{BadInput: true},
		},
		{
			name: "unknown type behaves as text",
			in:   constraint.Control{Type: "Fancy", Pattern: "x", Value: "y"},
			want: constraint.Validity{PatternMismatch: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := constraint.Evaluate(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("validity mismatch (-want +got):\n%s", diff)
			}
			if got.Valid() != (tc.want == constraint.Validity{}) {
				t.Fatalf("Valid() disagrees with flags: %+v", got)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		typ, raw, want string
		bad            bool
	}{
		{typ: "text", raw: "a\r\nb", want: "ab"},
		{typ: "email", raw: "  ada@example.com \n", want: "ada@example.com"},
		{typ: "url", raw: " https://example.com ", want: "https://example.com"},
		{typ: "number", raw: "1.5e3", want: "1.5e3"},
		{typ: "number", raw: "twelve", want: "", bad: true},
		{typ: "number", raw: "", want: ""},
		{typ: "color", raw: " #fff ", want: " #fff "},
	}
	for _, tc := range cases {
		got, bad := constraint.Sanitize(tc.typ, tc.raw)
		if got != tc.want || bad != tc.bad {
			t.Fatalf("Sanitize(%q, %q) = %q, %v; want %q, %v", tc.typ, tc.raw, got, bad, tc.want, tc.bad)
		}
	}
}

func TestTypeHelpers(t *testing.T) {
	if constraint.NormalizeType(" EMAIL ") != constraint.TypeEmail {
		t.Fatalf("expected email normalisation")
	}
	if constraint.NormalizeType("") != constraint.TypeText {
		t.Fatalf("expected empty type to be text")
	}
	if constraint.SupportsPattern("number") {
		t.Fatalf("number must not support pattern")
	}
	if !constraint.IsCheckable("radio") || constraint.IsCheckable("text") {
		t.Fatalf("unexpected checkable results")
	}
	if constraint.PatternCompiles("(") {
		t.Fatalf("expected unbalanced pattern to be rejected")
	}
}
