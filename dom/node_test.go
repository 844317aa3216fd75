package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClone_DeepCopiesSubtree(t *testing.T) {
	original := NewElement("div",
		[]Attribute{{Key: "id", Value: "root"}},
		NodeList{
			NewText("text"),
			NewElement("span", []Attribute{{Key: "class", Value: "x"}}, nil),
		},
	)

	clone := original.Clone()
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("Clone differs from original (-orig +clone):\n%s", diff)
	}

	clone.Element.SetAttr("id", "copy")
	clone.Element.Children[1].Element.SetAttr("class", "y")

	if original.Element.ID() != "root" {
		t.Error("Mutating clone attributes affected the original")
	}
	if !original.Element.Children[1].Element.HasClass("x") {
		t.Error("Mutating clone children affected the original")
	}
}

func TestAttr_FirstOfDuplicatesWins(t *testing.T) {
	el := &Element{Name: "div", Attrs: []Attribute{
		{Key: "data-x", Value: "first"},
		{Key: "data-x", Value: "second"},
	}}

	value, ok := el.Attr("data-x")
	if !ok || value != "first" {
		t.Errorf("Attr(data-x) = %q, %v; want first, true", value, ok)
	}

	el.RemoveAttr("data-x")
	if el.HasAttr("data-x") {
		t.Error("RemoveAttr left a duplicate behind")
	}
}

func TestSetAttr_UpdatesInPlaceOrAppends(t *testing.T) {
	el := &Element{Name: "input"}

	el.SetAttr("type", "text")
	el.SetAttr("type", "checkbox")
	el.SetAttr("checked", "")

	want := []Attribute{
		{Key: "type", Value: "checkbox"},
		{Key: "checked", Value: ""},
	}
	if diff := cmp.Diff(want, el.Attrs); diff != "" {
		t.Errorf("Attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestHasClass_TokenizesOnWhitespace(t *testing.T) {
	el := &Element{Name: "div", Attrs: []Attribute{
		{Key: "class", Value: "  nav bar\tactive "},
	}}

	for _, class := range []string{"nav", "bar", "active"} {
		if !el.HasClass(class) {
			t.Errorf("HasClass(%q) = false, want true", class)
		}
	}
	if el.HasClass("nav bar") {
		t.Error("HasClass matched a non-token substring")
	}
}

func TestTextContent_ConcatenatesDescendants(t *testing.T) {
	el := NewElement("p", nil, NodeList{
		NewText("Hello"),
		NewElement("b", nil, NodeList{NewText(" World")}),
		NewComment("ignored"),
		NewText("!"),
	}).Element

	if got := el.TextContent(); got != "Hello World!" {
		t.Errorf("TextContent() = %q, want %q", got, "Hello World!")
	}
}

func TestNewError_RecordsCallSite(t *testing.T) {
	err := NewError()

	file, line := err.Location()
	if file == "" || line == 0 {
		t.Errorf("Expected a recorded call site, got %q:%d", file, line)
	}
	if err.Error() != "unexpected error in HTML editor" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
