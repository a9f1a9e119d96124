package question

import (
	"fmt"
	"strings"
)

// Issue describes a structural problem found by Check.
type Issue struct {
	Index   int
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("descriptor %d: %s: %s", i.Index, i.Field, i.Message)
}

// CheckError aggregates every issue found in a schema.
type CheckError struct {
	Issues []Issue
}

func (e *CheckError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "question: schema check failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "question: schema check failed: " + strings.Join(parts, "; ")
}

// Check verifies the identity invariants a schema is expected to honour: every
// rendered input id is unique across the form, every field or group name is
// unique, and radio groups carry at least one option. It is only used in
// strict mode; the default pipeline renders whatever it receives.
func Check(descriptors []Descriptor) error {
	var issues []Issue
	ids := make(map[string]int)
	names := make(map[string]int)

	claimID := func(idx int, field, id string) {
		if strings.TrimSpace(id) == "" {
			issues = append(issues, Issue{Index: idx, Field: field, Message: "id is required"})
			return
		}
		if prev, ok := ids[id]; ok {
			issues = append(issues, Issue{Index: idx, Field: field, Message: fmt.Sprintf("id %q already used by descriptor %d", id, prev)})
			return
		}
		ids[id] = idx
	}

	for idx, desc := range descriptors {
		if strings.TrimSpace(desc.Type) == "" {
			issues = append(issues, Issue{Index: idx, Field: "type", Message: "type is required"})
		}
		name := strings.TrimSpace(desc.Name)
		switch {
		case name == "":
			issues = append(issues, Issue{Index: idx, Field: "name", Message: "name is required"})
		default:
			if prev, ok := names[name]; ok {
				issues = append(issues, Issue{Index: idx, Field: "name", Message: fmt.Sprintf("name %q already used by descriptor %d", name, prev)})
			} else {
				names[name] = idx
			}
		}

		if !desc.IsGroup() {
			claimID(idx, "id", desc.ID)
			continue
		}
		if len(desc.Options) == 0 {
			issues = append(issues, Issue{Index: idx, Field: "options", Message: "radio group needs at least one option"})
		}
		for optIdx, opt := range desc.Options {
			claimID(idx, fmt.Sprintf("options[%d].id", optIdx), opt.ID)
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &CheckError{Issues: issues}
}
