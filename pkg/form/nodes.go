package form

// Kind identifies the node flavour.
type Kind string

const (
	KindContainer Kind = "container"
	KindFieldset  Kind = "fieldset"
	KindLegend    Kind = "legend"
	KindLabel     Kind = "label"
	KindInput     Kind = "input"
	KindErrorSlot Kind = "error"
	KindButton    Kind = "button"
)

// Node is an element of the form tree.
type Node interface {
	Kind() Kind
	Children() []Node
}

// Container groups the nodes produced for one descriptor.
type Container struct {
	children []Node
}

// NewContainer returns a container holding children in order.
func NewContainer(children ...Node) *Container {
	return &Container{children: children}
}

func (c *Container) Kind() Kind { return KindContainer }
func (c *Container) Children() []Node { return c.children }
func (c *Container) Append(n ...Node) { c.children = append(c.children, n...) }

// Fieldset holds a radio group: a legend followed by option inputs and labels.
type Fieldset struct {
	children []Node
}

func (f *Fieldset) Kind() Kind { return KindFieldset }
func (f *Fieldset) Children() []Node { return f.children }
func (f *Fieldset) Append(n ...Node) { f.children = append(f.children, n...) }

// Legend returns the fieldset caption, if any.
func (f *Fieldset) Legend() *Legend {
	for _, child := range f.children {
		if legend, ok := child.(*Legend); ok {
			return legend
		}
	}
	return nil
}

// Legend captions a fieldset.
type Legend struct {
	Text string
}

func (l *Legend) Kind() Kind { return KindLegend }
func (l *Legend) Children() []Node { return nil }

// Label is the prompt text bound to an input through For.
type Label struct {
	For  string
	Text string
}

func (l *Label) Kind() Kind { return KindLabel }
func (l *Label) Children() []Node { return nil }

// ErrorSlot is the message element paired with an input. It starts hidden.
type ErrorSlot struct {
	ID      string
	Text    string
	visible bool
}

func (e *ErrorSlot) Kind() Kind { return KindErrorSlot }
func (e *ErrorSlot) Children() []Node { return nil }

// Visible reports whether the message is displayed.
func (e *ErrorSlot) Visible() bool { return e.visible }

// Show displays the message.
func (e *ErrorSlot) Show() { e.visible = true }

// Hide conceals the message.
func (e *ErrorSlot) Hide() { e.visible = false }

// Button is a non-input control, typically the submit sentinel.
type Button struct {
	Type string
	Text string
}

func (b *Button) Kind() Kind { return KindButton }
func (b *Button) Children() []Node { return nil }
