// Package selector implements a compound CSS selector subset for
// matching document elements: type, id, class and attribute selectors,
// plus comma-separated selector lists. Combinators and pseudo-classes
// are not supported.
package selector

import (
	"fmt"
	"strings"

	"github.com/chrisuehlinger/htmledit/dom"
)

// Selector is a parsed selector list. It matches an element when any
// of its compound selectors matches.
type Selector struct {
	compounds []*compound
}

// compound is a sequence of simple selectors that must all match the
// same element.
type compound struct {
	tag     string // "" or "*" matches any tag
	ids     []string
	classes []string
	attrs   []attrMatcher
}

// attrOp is the operator of an attribute selector.
type attrOp int

const (
	attrExists    attrOp = iota // [attr]
	attrEquals                  // [attr=value]
	attrIncludes                // [attr~=value]
	attrDashMatch               // [attr|=value]
	attrPrefix                  // [attr^=value]
	attrSuffix                  // [attr$=value]
	attrSubstring               // [attr*=value]
)

type attrMatcher struct {
	key   string
	op    attrOp
	value string
}

// Parse parses a selector list like "div#app.item, [data-x=y]".
func Parse(input string) (*Selector, error) {
	sel := &Selector{}
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("selector: empty compound in %q", input)
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		sel.compounds = append(sel.compounds, c)
	}
	return sel, nil
}

// MustParse is like Parse but panics on error. Intended for selectors
// known at compile time.
func MustParse(input string) *Selector {
	sel, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return sel
}

func parseCompound(input string) (*compound, error) {
	c := &compound{}
	p := &parser{input: input}

	// Optional leading type selector.
	if p.peek() == '*' {
		p.pos++
		c.tag = "*"
	} else if isNameStart(p.peek()) {
		c.tag = p.consumeName()
	}

	for p.pos < len(p.input) {
		switch ch := p.peek(); ch {
		case '#':
			p.pos++
			name := p.consumeName()
			if name == "" {
				return nil, fmt.Errorf("selector: expected id after '#' in %q", input)
			}
			c.ids = append(c.ids, name)
		case '.':
			p.pos++
			name := p.consumeName()
			if name == "" {
				return nil, fmt.Errorf("selector: expected class after '.' in %q", input)
			}
			c.classes = append(c.classes, name)
		case '[':
			m, err := p.consumeAttrMatcher()
			if err != nil {
				return nil, err
			}
			c.attrs = append(c.attrs, m)
		case ' ', '\t', '>', '+', '~':
			return nil, fmt.Errorf("selector: combinators are not supported in %q", input)
		case ':':
			return nil, fmt.Errorf("selector: pseudo-classes are not supported in %q", input)
		default:
			return nil, fmt.Errorf("selector: unexpected %q in %q", ch, input)
		}
	}
	return c, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consumeName() string {
	start := p.pos
	for p.pos < len(p.input) && isNameChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) consumeAttrMatcher() (attrMatcher, error) {
	p.pos++ // '['
	end := strings.IndexByte(p.input[p.pos:], ']')
	if end < 0 {
		return attrMatcher{}, fmt.Errorf("selector: unterminated attribute selector in %q", p.input)
	}
	body := p.input[p.pos : p.pos+end]
	p.pos += end + 1

	m := attrMatcher{op: attrExists}
	for i := 0; i < len(body); i++ {
		var op attrOp
		var opLen int
		switch {
		case body[i] == '=':
			op, opLen = attrEquals, 1
		case body[i] == '~' && i+1 < len(body) && body[i+1] == '=':
			op, opLen = attrIncludes, 2
		case body[i] == '|' && i+1 < len(body) && body[i+1] == '=':
			op, opLen = attrDashMatch, 2
		case body[i] == '^' && i+1 < len(body) && body[i+1] == '=':
			op, opLen = attrPrefix, 2
		case body[i] == '$' && i+1 < len(body) && body[i+1] == '=':
			op, opLen = attrSuffix, 2
		case body[i] == '*' && i+1 < len(body) && body[i+1] == '=':
			op, opLen = attrSubstring, 2
		default:
			continue
		}
		m.key = strings.TrimSpace(body[:i])
		m.op = op
		m.value = unquote(strings.TrimSpace(body[i+opLen:]))
		if m.key == "" {
			return attrMatcher{}, fmt.Errorf("selector: empty attribute name in %q", p.input)
		}
		return m, nil
	}
	m.key = strings.TrimSpace(body)
	if m.key == "" {
		return attrMatcher{}, fmt.Errorf("selector: empty attribute selector in %q", p.input)
	}
	return m, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isNameStart(ch byte) bool {
	return ch == '_' || ch == '-' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// Matches reports whether any compound in the selector list matches
// the element. It implements dom.Selector.
func (s *Selector) Matches(el *dom.Element) bool {
	for _, c := range s.compounds {
		if c.matches(el) {
			return true
		}
	}
	return false
}

func (c *compound) matches(el *dom.Element) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, el.Name) {
		return false
	}
	for _, id := range c.ids {
		if el.ID() != id {
			return false
		}
	}
	for _, class := range c.classes {
		if !el.HasClass(class) {
			return false
		}
	}
	for _, m := range c.attrs {
		if !m.matches(el) {
			return false
		}
	}
	return true
}

func (m attrMatcher) matches(el *dom.Element) bool {
	value, ok := el.Attr(m.key)
	if !ok {
		return false
	}
	switch m.op {
	case attrExists:
		return true
	case attrEquals:
		return value == m.value
	case attrIncludes:
		for _, token := range strings.Fields(value) {
			if token == m.value {
				return true
			}
		}
		return false
	case attrDashMatch:
		return value == m.value || strings.HasPrefix(value, m.value+"-")
	case attrPrefix:
		return m.value != "" && strings.HasPrefix(value, m.value)
	case attrSuffix:
		return m.value != "" && strings.HasSuffix(value, m.value)
	case attrSubstring:
		return m.value != "" && strings.Contains(value, m.value)
	}
	return false
}
