package form

import (
	"context"
	"errors"
)

// DefaultID is the identifier of the host form the pipeline renders into.
const DefaultID = "dynamic-form"

// ErrNoSentinel is returned when inserting into a form without a trailing
// child to anchor on.
var ErrNoSentinel = errors.New("form: form has no sentinel child")

// SubmitFunc handles a submit gesture in place of the default submission.
type SubmitFunc func(ctx context.Context) error

// Form is the root of the live form tree.
type Form struct {
	id       string
	children []Node
	slots    map[*Input]*ErrorSlot
	onSubmit []SubmitFunc
}

// New creates a form whose existing children are kept in order. The last
// child acts as the sentinel every generated field is inserted before.
func New(id string, children ...Node) *Form {
	f := &Form{
		id:    id,
		slots: make(map[*Input]*ErrorSlot),
	}
	for _, child := range children {
		f.adopt(child)
	}
	f.children = append(f.children, children...)
	return f
}

// NewHost creates the default host form: identifier DefaultID with a single
// submit button as sentinel.
func NewHost(submitLabel string) *Form {
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	return New(DefaultID, &Button{Type: "submit", Text: submitLabel})
}

// ID returns the form identifier.
func (f *Form) ID() string { return f.id }

// Kind satisfies Node so walkers can start from the form itself.
func (f *Form) Kind() Kind { return KindContainer }

// Children returns the top level nodes in document order.
func (f *Form) Children() []Node { return f.children }

// Sentinel returns the trailing child, or nil when the form is empty.
func (f *Form) Sentinel() Node {
	if len(f.children) == 0 {
		return nil
	}
	return f.children[len(f.children)-1]
}

// InsertBeforeSentinel places n immediately before the last child.
func (f *Form) InsertBeforeSentinel(n Node) error {
	if len(f.children) == 0 {
		return ErrNoSentinel
	}
	f.adopt(n)
	last := len(f.children) - 1
	f.children = append(f.children, nil)
	copy(f.children[last+1:], f.children[last:])
	f.children[last] = n
	return nil
}

// Associate records slot as the error display of in.
func (f *Form) Associate(in *Input, slot *ErrorSlot) {
	if in == nil || slot == nil {
		return
	}
	f.slots[in] = slot
}

// ErrorSlotFor returns the error display paired with in, if any.
func (f *Form) ErrorSlotFor(in *Input) *ErrorSlot {
	return f.slots[in]
}

// Inputs returns every input in document order.
func (f *Form) Inputs() []*Input {
	var out []*Input
	Walk(f, func(n Node) {
		if in, ok := n.(*Input); ok {
			out = append(out, in)
		}
	})
	return out
}

// Group returns the radios sharing name, in document order.
func (f *Form) Group(name string) []*Input {
	var out []*Input
	for _, in := range f.Inputs() {
		if in.IsRadio() && in.name == name {
			out = append(out, in)
		}
	}
	return out
}

// Input returns the input with the given id.
func (f *Form) Input(id string) (*Input, bool) {
	for _, in := range f.Inputs() {
		if in.id == id {
			return in, true
		}
	}
	return nil, false
}

// ErrorSlot returns the error slot with the given id.
func (f *Form) ErrorSlot(id string) (*ErrorSlot, bool) {
	var found *ErrorSlot
	Walk(f, func(n Node) {
		if slot, ok := n.(*ErrorSlot); ok && found == nil && slot.ID == id {
			found = slot
		}
	})
	return found, found != nil
}

// Reset restores every input to its initial value and checkedness. Error
// presentation is left untouched.
func (f *Form) Reset() {
	for _, in := range f.Inputs() {
		in.reset()
	}
}

// OnSubmit registers a handler for submit gestures.
func (f *Form) OnSubmit(fn SubmitFunc) {
	if fn != nil {
		f.onSubmit = append(f.onSubmit, fn)
	}
}

// Submit dispatches a submit gesture to the registered handlers and returns
// the first error. Without handlers it does nothing.
func (f *Form) Submit(ctx context.Context) error {
	var first error
	for _, fn := range f.onSubmit {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *Form) adopt(n Node) {
	Walk(n, func(child Node) {
		if in, ok := child.(*Input); ok {
			in.form = f
		}
	})
}

// Walk visits n and its descendants depth first, in document order.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children() {
		Walk(child, visit)
	}
}
