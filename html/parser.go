// Package html converts between markup text and the dom node tree,
// using golang.org/x/net/html as the underlying tokenizer
// implementation.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/htmledit/dom"
)

// voidElements have no content model and never take an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// Parse parses HTML from a string into a node list.
//
// The document is tokenized rather than run through the full HTML5
// tree construction, so the result is exactly the node sequence that
// appears in the input: no implied <html>, <head> or <body> elements
// are synthesized.
func Parse(content string) (dom.NodeList, error) {
	return ParseReader(strings.NewReader(content))
}

// ParseFragment parses an HTML fragment into a node list. Fragments
// are parsed without any surrounding document context.
func ParseFragment(fragment string) (dom.NodeList, error) {
	return ParseReader(strings.NewReader(fragment))
}

// ParseReader parses HTML from an io.Reader into a node list.
//
// Unmatched end tags are ignored; elements still open at end of input
// are implicitly closed.
func ParseReader(r io.Reader) (dom.NodeList, error) {
	z := html.NewTokenizer(r)

	var doc dom.NodeList
	var stack []*dom.Element

	appendNode := func(n dom.Node) {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		} else {
			doc = append(doc, n)
		}
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return doc, nil

		case html.TextToken:
			appendNode(dom.NewText(z.Token().Data))

		case html.StartTagToken:
			t := z.Token()
			el := &dom.Element{Name: t.Data, Attrs: convertAttributes(t.Attr)}
			appendNode(dom.Node{Type: dom.ElementNode, Element: el})
			if !voidElements[t.Data] {
				stack = append(stack, el)
			}

		case html.SelfClosingTagToken:
			t := z.Token()
			appendNode(dom.NewElement(t.Data, convertAttributes(t.Attr), nil))

		case html.EndTagToken:
			t := z.Token()
			for i := len(stack) - 1; i >= 0; i-- {
				if strings.EqualFold(stack[i].Name, t.Data) {
					stack = stack[:i]
					break
				}
			}

		case html.CommentToken:
			appendNode(dom.NewComment(z.Token().Data))

		case html.DoctypeToken:
			appendNode(dom.NewDoctype(z.Token().Data))
		}
	}
}

// convertAttributes converts x/net/html attributes to dom attributes,
// preserving source order and duplicates.
func convertAttributes(attrs []html.Attribute) []dom.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]dom.Attribute, len(attrs))
	for i, a := range attrs {
		result[i] = dom.Attribute{Key: a.Key, Value: a.Val}
	}
	return result
}
