package dom

import "strings"

// Selector is a predicate over a single element. Implementations must
// be pure functions of the element's tag, attributes and (for full
// matches) children: deterministic, side-effect free, and safe to
// re-evaluate during recursive descent.
type Selector interface {
	Matches(*Element) bool
}

// SelectorFunc adapts an ordinary function to the Selector interface.
type SelectorFunc func(*Element) bool

// Matches calls f(el).
func (f SelectorFunc) Matches(el *Element) bool {
	return f(el)
}

// TransformFunc produces a replacement node for a matched element. It
// receives the pre-replacement element and may fail; a failure aborts
// the ReplaceWith call that invoked it.
type TransformFunc func(*Element) (Node, error)

// matchesShape evaluates the selector against a copy of the element
// with its children cleared. Structural edits (InsertTo, RemoveBy) use
// this so that matching never depends on descendant content.
func matchesShape(sel Selector, el *Element) bool {
	probe := Element{Name: el.Name, Attrs: el.Attrs}
	return sel.Matches(&probe)
}

// matchesFull evaluates the selector against the element as it is,
// children included. Visits and replacements (ExecuteFor, ReplaceWith)
// use this.
func matchesFull(sel Selector, el *Element) bool {
	return sel.Matches(el)
}

// Trim removes, at every nesting level, all comment nodes and all text
// nodes whose content is empty after stripping surrounding whitespace.
// Doctype and element nodes are always kept, and kept text nodes keep
// their stored content untouched. Trim is idempotent.
func (ns *NodeList) Trim() *NodeList {
	kept := (*ns)[:0]
	for _, n := range *ns {
		switch n.Type {
		case CommentNode:
			// dropped
		case TextNode:
			if strings.TrimSpace(n.Data) != "" {
				kept = append(kept, n)
			}
		default:
			kept = append(kept, n)
		}
	}
	*ns = kept
	for i := range *ns {
		if el := (*ns)[i].AsElement(); el != nil {
			el.Children.Trim()
		}
	}
	return ns
}

// Trim removes comment and whitespace-only text nodes from the
// element's subtree. See NodeList.Trim.
func (e *Element) Trim() *Element {
	e.Children.Trim()
	return e
}

// InsertTo appends an independent deep copy of target as the last
// child of every element whose shape (name and attributes, children
// disregarded) matches the selector. Nested matches receive the
// insertion before their ancestors, so matching never sees content the
// call itself is about to add. An element matching at two depths
// receives the insertion at both.
func (ns *NodeList) InsertTo(sel Selector, target Node) *NodeList {
	for i := range *ns {
		el := (*ns)[i].AsElement()
		if el == nil {
			continue
		}
		el.Children.InsertTo(sel, target)
		if matchesShape(sel, el) {
			el.Children = append(el.Children, target.Clone())
		}
	}
	return ns
}

// InsertTo appends a copy of target to every matching element in the
// subtree, the receiver itself included. See NodeList.InsertTo.
func (e *Element) InsertTo(sel Selector, target Node) *Element {
	e.Children.InsertTo(sel, target)
	if matchesShape(sel, e) {
		e.Children = append(e.Children, target.Clone())
	}
	return e
}

// RemoveBy deletes every element whose shape matches the selector,
// together with its entire subtree. The current level is filtered
// first; recursion then continues into the children of the survivors,
// so a removed element's descendants are never independently visited.
// Doctype, comment and text nodes are never removed.
func (ns *NodeList) RemoveBy(sel Selector) *NodeList {
	kept := (*ns)[:0]
	for _, n := range *ns {
		if el := n.AsElement(); el != nil && matchesShape(sel, el) {
			continue
		}
		kept = append(kept, n)
	}
	*ns = kept
	for i := range *ns {
		if el := (*ns)[i].AsElement(); el != nil {
			el.RemoveBy(sel)
		}
	}
	return ns
}

// RemoveBy deletes every matching element below the receiver. The
// receiver itself is never removed. See NodeList.RemoveBy.
func (e *Element) RemoveBy(sel Selector) *Element {
	e.Children.RemoveBy(sel)
	return e
}

// ReplaceWith replaces every element whose true value (children
// included) matches the selector with the result of transform applied
// to the pre-replacement element. A matched element is replaced before
// any descent into it, so its original children are not independently
// visited. The first transform failure from any depth aborts the call
// and propagates; nodes already replaced earlier in the same call stay
// replaced (no rollback).
func (ns *NodeList) ReplaceWith(sel Selector, transform TransformFunc) (*NodeList, error) {
	for i := range *ns {
		el := (*ns)[i].AsElement()
		if el == nil {
			continue
		}
		if matchesFull(sel, el) {
			replacement, err := transform(el)
			if err != nil {
				return nil, err
			}
			(*ns)[i] = replacement
		} else if _, err := el.Children.ReplaceWith(sel, transform); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// ReplaceWith replaces matching elements below the receiver. The
// receiver itself cannot be replaced out of its owner and is therefore
// not a candidate. See NodeList.ReplaceWith.
func (e *Element) ReplaceWith(sel Selector, transform TransformFunc) (*Element, error) {
	if _, err := e.Children.ReplaceWith(sel, transform); err != nil {
		return nil, err
	}
	return e, nil
}

// ExecuteFor visits, in pre-order, every element whose true value
// matches the selector, and descends into every element's children
// regardless of the match result. The visitor may mutate the element's
// attributes and children, and such mutation is visible to subsequent
// visits of descendants; it must not detach the visited element from
// its owner during the call.
func (ns *NodeList) ExecuteFor(sel Selector, visit func(*Element)) {
	for i := range *ns {
		if el := (*ns)[i].AsElement(); el != nil {
			el.ExecuteFor(sel, visit)
		}
	}
}

// ExecuteFor visits every matching element in the subtree, the
// receiver included. See NodeList.ExecuteFor.
func (e *Element) ExecuteFor(sel Selector, visit func(*Element)) {
	if matchesFull(sel, e) {
		visit(e)
	}
	e.Children.ExecuteFor(sel, visit)
}
