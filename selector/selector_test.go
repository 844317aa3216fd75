package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/htmledit/dom"
)

func element(name string, attrs ...dom.Attribute) *dom.Element {
	return &dom.Element{Name: name, Attrs: attrs}
}

func TestParse_Valid(t *testing.T) {
	tests := []string{
		"div",
		"*",
		".class",
		"#id",
		"div.class",
		"div#id.class1.class2",
		"[href]",
		"a[href^='https://']",
		"input[type=checkbox][checked]",
		"h1, h2, h3",
		"div , .spaced",
		"-custom-tag",
	}
	for _, input := range tests {
		_, err := Parse(input)
		assert.NoError(t, err, "Parse(%q)", input)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"div p",
		"div > p",
		"div + p",
		"ul ~ li",
		"p:first-child",
		"a::before",
		"div,",
		".",
		"#",
		"[=x]",
		"[unterminated",
		"div(",
	}
	for _, input := range tests {
		_, err := Parse(input)
		assert.Error(t, err, "Parse(%q)", input)
	}
}

func TestMustParse_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustParse("div > p") })
	assert.NotPanics(t, func() { MustParse("div.ok") })
}

func TestMatches_TypeSelector(t *testing.T) {
	sel := MustParse("div")

	assert.True(t, sel.Matches(element("div")))
	assert.True(t, sel.Matches(element("DIV")), "tag matching is case-insensitive")
	assert.False(t, sel.Matches(element("span")))
}

func TestMatches_Universal(t *testing.T) {
	sel := MustParse("*")

	assert.True(t, sel.Matches(element("div")))
	assert.True(t, sel.Matches(element("anything")))
}

func TestMatches_Compound(t *testing.T) {
	sel := MustParse("div#app.item.active")

	match := element("div",
		dom.Attribute{Key: "id", Value: "app"},
		dom.Attribute{Key: "class", Value: "item active extra"},
	)
	assert.True(t, sel.Matches(match))

	missingClass := element("div",
		dom.Attribute{Key: "id", Value: "app"},
		dom.Attribute{Key: "class", Value: "item"},
	)
	assert.False(t, sel.Matches(missingClass))

	wrongID := element("div",
		dom.Attribute{Key: "id", Value: "other"},
		dom.Attribute{Key: "class", Value: "item active"},
	)
	assert.False(t, sel.Matches(wrongID))
}

func TestMatches_SelectorList(t *testing.T) {
	sel := MustParse("h1, h2, .headline")

	assert.True(t, sel.Matches(element("h1")))
	assert.True(t, sel.Matches(element("h2")))
	assert.True(t, sel.Matches(element("p", dom.Attribute{Key: "class", Value: "headline"})))
	assert.False(t, sel.Matches(element("h3")))
}

func TestMatches_AttributeOperators(t *testing.T) {
	link := element("a",
		dom.Attribute{Key: "href", Value: "https://example.com/docs.html"},
		dom.Attribute{Key: "rel", Value: "noopener noreferrer"},
		dom.Attribute{Key: "lang", Value: "en-US"},
	)

	tests := []struct {
		selector string
		want     bool
	}{
		{"[href]", true},
		{"[missing]", false},
		{"[lang=en-US]", true},
		{"[lang=en]", false},
		{"[rel~=noopener]", true},
		{"[rel~=noop]", false},
		{"[lang|=en]", true},
		{"[lang|=e]", false},
		{"[href^='https://']", true},
		{"[href^='http://']", false},
		{"[href$=.html]", true},
		{"[href$=.css]", false},
		{"[href*=example]", true},
		{"[href*=nowhere]", false},
	}
	for _, tt := range tests {
		sel, err := Parse(tt.selector)
		require.NoError(t, err, "Parse(%q)", tt.selector)
		assert.Equal(t, tt.want, sel.Matches(link), "Matches(%q)", tt.selector)
	}
}

func TestMatches_ImplementsDomSelector(t *testing.T) {
	var _ dom.Selector = MustParse("div")
}
