// Package dom provides a lightweight document tree for HTML editing:
// a value-semantics node model plus selector-driven, in-place editing
// operations over it.
package dom

import (
	"strings"
)

// NodeType represents the type of a node in the document tree.
type NodeType int

const (
	DoctypeNode NodeType = iota
	CommentNode
	TextNode
	ElementNode
)

// Attribute represents a single HTML attribute. Attribute order is
// insertion order and duplicates are permitted.
type Attribute struct {
	Key   string
	Value string
}

// Node represents a node in the document tree. Exactly one of the four
// node types applies: Data carries the content for doctype, comment and
// text nodes, Element is set only when Type is ElementNode.
type Node struct {
	Type    NodeType
	Data    string   // doctype name, comment text, or text content
	Element *Element // non-nil only for ElementNode
}

// Element is a named node carrying attributes and an ordered list of
// child nodes. The children are exclusively owned by the element.
type Element struct {
	Name     string
	Attrs    []Attribute
	Children NodeList
}

// NodeList is an ordered sequence of sibling nodes. A parsed document
// is a NodeList; so are an element's children.
type NodeList []Node

// NewDoctype creates a doctype node.
func NewDoctype(data string) Node {
	return Node{Type: DoctypeNode, Data: data}
}

// NewComment creates a comment node.
func NewComment(data string) Node {
	return Node{Type: CommentNode, Data: data}
}

// NewText creates a text node.
func NewText(data string) Node {
	return Node{Type: TextNode, Data: data}
}

// NewElement creates an element node with the given tag name,
// attributes and children.
func NewElement(name string, attrs []Attribute, children NodeList) Node {
	return Node{Type: ElementNode, Element: &Element{
		Name:     name,
		Attrs:    attrs,
		Children: children,
	}}
}

// AsElement returns the node's element, or nil if the node is not an
// element.
func (n Node) AsElement() *Element {
	if n.Type == ElementNode {
		return n.Element
	}
	return nil
}

// Clone returns a deep copy of the node. The copy owns its own
// attribute and child storage, so later mutation of the copy never
// affects the original.
func (n Node) Clone() Node {
	if n.Type == ElementNode && n.Element != nil {
		return Node{Type: ElementNode, Element: n.Element.Clone()}
	}
	return n
}

// Clone returns a deep copy of the element and its entire subtree.
func (e *Element) Clone() *Element {
	clone := &Element{Name: e.Name}
	if len(e.Attrs) > 0 {
		clone.Attrs = make([]Attribute, len(e.Attrs))
		copy(clone.Attrs, e.Attrs)
	}
	if len(e.Children) > 0 {
		clone.Children = e.Children.Clone()
	}
	return clone
}

// Clone returns a deep copy of the node list.
func (ns NodeList) Clone() NodeList {
	if ns == nil {
		return nil
	}
	clone := make(NodeList, len(ns))
	for i, n := range ns {
		clone[i] = n.Clone()
	}
	return clone
}

// Attr returns the value of the first attribute with the given key,
// and whether such an attribute exists.
func (e *Element) Attr(key string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttr returns true if the element has an attribute with the given key.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.Attr(key)
	return ok
}

// SetAttr sets an attribute value, updating the first attribute with
// the given key or appending a new one.
func (e *Element) SetAttr(key, value string) {
	for i, attr := range e.Attrs {
		if attr.Key == key {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Key: key, Value: value})
}

// RemoveAttr removes every attribute with the given key.
func (e *Element) RemoveAttr(key string) {
	kept := e.Attrs[:0]
	for _, attr := range e.Attrs {
		if attr.Key != key {
			kept = append(kept, attr)
		}
	}
	e.Attrs = kept
}

// ID returns the element's id attribute, or the empty string.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// HasClass returns true if the element's class attribute contains the
// given class as a whitespace-separated token.
func (e *Element) HasClass(class string) bool {
	value, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(value) {
		if token == class {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text content of the element and
// its descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.collectTextContent(&sb)
	return sb.String()
}

func (e *Element) collectTextContent(sb *strings.Builder) {
	for _, child := range e.Children {
		switch child.Type {
		case TextNode:
			sb.WriteString(child.Data)
		case ElementNode:
			child.Element.collectTextContent(sb)
		}
	}
}
