package html

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/htmledit/dom"
)

// rawTextElements hold literal text children that must not be escaped
// when serializing.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true,
	"noscript": true, "plaintext": true, "script": true,
	"style": true, "xmp": true,
}

// Render serializes a node list to HTML.
func Render(ns dom.NodeList) string {
	var sb strings.Builder
	for _, n := range ns {
		renderNode(&sb, n, false)
	}
	return sb.String()
}

// RenderNode serializes a single node to HTML.
func RenderNode(n dom.Node) string {
	var sb strings.Builder
	renderNode(&sb, n, false)
	return sb.String()
}

func renderNode(sb *strings.Builder, n dom.Node, rawText bool) {
	switch n.Type {
	case dom.DoctypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Data)
		sb.WriteString(">")
	case dom.CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case dom.TextNode:
		if rawText {
			sb.WriteString(n.Data)
		} else {
			sb.WriteString(html.EscapeString(n.Data))
		}
	case dom.ElementNode:
		renderElement(sb, n.Element)
	}
}

func renderElement(sb *strings.Builder, el *dom.Element) {
	sb.WriteString("<")
	sb.WriteString(el.Name)
	for _, attr := range el.Attrs {
		sb.WriteString(" ")
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Value))
		sb.WriteString(`"`)
	}

	if voidElements[el.Name] && len(el.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")

	rawText := rawTextElements[el.Name]
	for _, child := range el.Children {
		renderNode(sb, child, rawText)
	}

	sb.WriteString("</")
	sb.WriteString(el.Name)
	sb.WriteString(">")
}
