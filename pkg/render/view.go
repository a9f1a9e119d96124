package render

import (
	"github.com/goliatone/go-dynform/pkg/form"
)

// FormView is a flat, serialisable projection of a form tree. Renderers and
// templates consume it instead of walking live nodes.
type FormView struct {
	ID       string     `json:"id"`
	Children []NodeView `json:"children"`
}

// NodeView projects a single node. Only the fields relevant to Kind are set.
type NodeView struct {
	Kind     string           `json:"kind"`
	ID       string           `json:"id,omitempty"`
	Text     string           `json:"text,omitempty"`
	For      string           `json:"for,omitempty"`
	Type     string           `json:"type,omitempty"`
	Name     string           `json:"name,omitempty"`
	Value    string           `json:"value,omitempty"`
	Pattern  string           `json:"pattern,omitempty"`
	Required bool             `json:"required,omitempty"`
	Checked  bool             `json:"checked,omitempty"`
	Visible  bool             `json:"visible,omitempty"`
	Attrs    []form.Attribute `json:"attrs,omitempty"`
	Children []NodeView       `json:"children,omitempty"`
}

// View projects f in document order.
func View(f *form.Form) FormView {
	view := FormView{ID: f.ID(), Children: make([]NodeView, 0, len(f.Children()))}
	for _, child := range f.Children() {
		view.Children = append(view.Children, viewNode(child))
	}
	return view
}

func viewNode(n form.Node) NodeView {
	view := NodeView{Kind: string(n.Kind())}
	switch node := n.(type) {
	case *form.Legend:
		view.Text = node.Text
	case *form.Label:
		view.For = node.For
		view.Text = node.Text
	case *form.Input:
		view.ID = node.ID()
		view.Type = node.Type()
		view.Name = node.Name()
		view.Value = node.Value()
		view.Pattern = node.Pattern()
		view.Required = node.Required()
		view.Checked = node.Checked()
		view.Attrs = node.Attrs()
	case *form.ErrorSlot:
		view.ID = node.ID
		view.Text = node.Text
		view.Visible = node.Visible()
	case *form.Button:
		view.Type = node.Type
		view.Text = node.Text
	}
	for _, child := range n.Children() {
		view.Children = append(view.Children, viewNode(child))
	}
	return view
}
