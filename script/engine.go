// Package script runs JavaScript transforms and visitors over document
// elements using the goja runtime. Scripts receive a small element
// binding with attribute accessors; transforms return an HTML fragment
// that replaces the matched element.
package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/htmledit/dom"
	"github.com/chrisuehlinger/htmledit/html"
)

// Engine wraps a goja runtime configured for element scripts.
type Engine struct {
	vm *goja.Runtime
}

// New creates a script engine.
func New() *Engine {
	return &Engine{vm: goja.New()}
}

// compileFunc evaluates src, which must be a JavaScript function
// expression such as "(el) => ...".
func (e *Engine) compileFunc(src string) (goja.Callable, error) {
	v, err := e.vm.RunString("(" + src + ")")
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("script: %q is not a function", src)
	}
	return fn, nil
}

// bindElement exposes an element to the runtime as an object with a
// name property and attribute/text accessors. Mutation through the
// binding writes straight back into the element.
func (e *Engine) bindElement(el *dom.Element) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("name", el.Name)
	obj.Set("getAttribute", func(key string) goja.Value {
		if value, ok := el.Attr(key); ok {
			return e.vm.ToValue(value)
		}
		return goja.Null()
	})
	obj.Set("setAttribute", func(key, value string) {
		el.SetAttr(key, value)
	})
	obj.Set("hasAttribute", func(key string) bool {
		return el.HasAttr(key)
	})
	obj.Set("removeAttribute", func(key string) {
		el.RemoveAttr(key)
	})
	obj.Set("text", func() string {
		return el.TextContent()
	})
	obj.Set("innerHTML", func() string {
		return html.Render(el.Children)
	})
	obj.Set("outerHTML", func() string {
		return html.RenderNode(dom.Node{Type: dom.ElementNode, Element: el})
	})
	return obj
}

// Transform compiles src into a transform usable with ReplaceWith. The
// script function receives the matched element binding and must return
// a string, which is parsed as an HTML fragment; the fragment's single
// node replaces the element. A script error or a fragment that is not
// exactly one node fails the transform.
func (e *Engine) Transform(src string) (dom.TransformFunc, error) {
	fn, err := e.compileFunc(src)
	if err != nil {
		return nil, err
	}
	return func(el *dom.Element) (dom.Node, error) {
		result, err := fn(goja.Undefined(), e.bindElement(el))
		if err != nil {
			return dom.Node{}, fmt.Errorf("script: transform <%s>: %w", el.Name, err)
		}
		markup, ok := result.Export().(string)
		if !ok {
			return dom.Node{}, fmt.Errorf("script: transform <%s> returned %s, want string", el.Name, result)
		}
		nodes, err := html.ParseFragment(markup)
		if err != nil {
			return dom.Node{}, fmt.Errorf("script: transform <%s>: %w", el.Name, err)
		}
		if len(nodes) != 1 {
			return dom.Node{}, fmt.Errorf("script: transform <%s> produced %d nodes, want 1", el.Name, len(nodes))
		}
		return nodes[0], nil
	}, nil
}

// Visitor compiles src into a visitor usable with ExecuteFor. The
// script function receives the matched element binding; its return
// value is ignored.
func (e *Engine) Visitor(src string) (func(*dom.Element), error) {
	fn, err := e.compileFunc(src)
	if err != nil {
		return nil, err
	}
	return func(el *dom.Element) {
		// ExecuteFor is infallible by contract; a failing visitor
		// script leaves the element unchanged.
		_, _ = fn(goja.Undefined(), e.bindElement(el))
	}, nil
}
