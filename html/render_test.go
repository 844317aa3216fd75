package html

import (
	"testing"

	"github.com/chrisuehlinger/htmledit/dom"
)

func TestRender_Roundtrip(t *testing.T) {
	tests := []string{
		`<!DOCTYPE html><html><head></head><body></body></html>`,
		`<div class="a" id="b">text</div>`,
		`<!--note--><p>after</p>`,
		`<ul><li>one</li><li>two</li></ul>`,
		`<script>let x = 1 < 2;</script>`,
	}
	for _, input := range tests {
		doc, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", input, err)
			continue
		}
		if got := Render(doc); got != input {
			t.Errorf("Render mismatch:\n got %q\nwant %q", got, input)
		}
	}
}

func TestRender_EscapesText(t *testing.T) {
	doc := dom.NodeList{
		dom.NewElement("p", nil, dom.NodeList{dom.NewText(`a < b & "c"`)}),
	}
	want := `<p>a &lt; b &amp; &#34;c&#34;</p>`
	if got := Render(doc); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_EscapesAttributes(t *testing.T) {
	doc := dom.NodeList{
		dom.NewElement("div", []dom.Attribute{{Key: "title", Value: `say "hi" & go`}}, nil),
	}
	want := `<div title="say &#34;hi&#34; &amp; go"></div>`
	if got := Render(doc); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_VoidElements(t *testing.T) {
	doc := dom.NodeList{
		dom.NewElement("br", nil, nil),
		dom.NewElement("meta", []dom.Attribute{{Key: "charset", Value: "UTF-8"}}, nil),
	}
	want := `<br/><meta charset="UTF-8"/>`
	if got := Render(doc); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_RawTextNotEscaped(t *testing.T) {
	doc := dom.NodeList{
		dom.NewElement("style", nil, dom.NodeList{dom.NewText("a > b { color: red }")}),
	}
	want := `<style>a > b { color: red }</style>`
	if got := Render(doc); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderNode_SingleNode(t *testing.T) {
	n := dom.NewComment("solo")
	if got := RenderNode(n); got != "<!--solo-->" {
		t.Errorf("RenderNode = %q", got)
	}
}
