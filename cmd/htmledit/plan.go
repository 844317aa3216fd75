package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/htmledit/dom"
	"github.com/chrisuehlinger/htmledit/html"
	"github.com/chrisuehlinger/htmledit/script"
	"github.com/chrisuehlinger/htmledit/selector"
)

// Plan is an ordered list of edit steps loaded from YAML:
//
//	steps:
//	  - op: trim
//	  - op: remove
//	    selector: ".ad"
//	  - op: insert
//	    selector: body
//	    html: "<script src=\"app.js\"></script>"
//	  - op: replace
//	    selector: p
//	    js: '(el) => "<p>" + el.text() + "!</p>"'
//	  - op: exec
//	    selector: input
//	    js: '(el) => el.setAttribute("class", "input")'
type Plan struct {
	Steps []Step `yaml:"steps"`
}

// Step is a single edit operation in a plan.
type Step struct {
	Op       string `yaml:"op"`
	Selector string `yaml:"selector,omitempty"`
	HTML     string `yaml:"html,omitempty"`
	JS       string `yaml:"js,omitempty"`
}

// LoadPlan reads and validates a YAML edit plan.
func LoadPlan(path string) (*Plan, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return parsePlan(content)
}

func parsePlan(content []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(content, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("plan has no steps")
	}
	for i, step := range plan.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &plan, nil
}

func (s Step) validate() error {
	switch s.Op {
	case "trim":
		return nil
	case "remove", "exec", "replace", "insert":
		if s.Selector == "" {
			return fmt.Errorf("%s step requires a selector", s.Op)
		}
		if s.Op == "insert" && s.HTML == "" {
			return fmt.Errorf("insert step requires html")
		}
		if (s.Op == "exec" || s.Op == "replace") && s.JS == "" {
			return fmt.Errorf("%s step requires js", s.Op)
		}
		return nil
	case "":
		return fmt.Errorf("missing op")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}

// Apply runs the plan's steps against the document in order. A failing
// step aborts the plan; edits from earlier steps stay applied.
func (p *Plan) Apply(doc *dom.NodeList, logger *zap.Logger) error {
	engine := script.New()
	for i, step := range p.Steps {
		logger.Debug("applying step",
			zap.Int("step", i+1),
			zap.String("op", step.Op),
			zap.String("selector", step.Selector))
		if err := step.apply(doc, engine); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func (s Step) apply(doc *dom.NodeList, engine *script.Engine) error {
	if s.Op == "trim" {
		doc.Trim()
		return nil
	}
	sel, err := selector.Parse(s.Selector)
	if err != nil {
		return err
	}
	switch s.Op {
	case "remove":
		doc.RemoveBy(sel)
	case "insert":
		fragment, err := html.ParseFragment(s.HTML)
		if err != nil {
			return err
		}
		for _, n := range fragment {
			doc.InsertTo(sel, n)
		}
	case "replace":
		transform, err := engine.Transform(s.JS)
		if err != nil {
			return err
		}
		if _, err := doc.ReplaceWith(sel, transform); err != nil {
			return err
		}
	case "exec":
		visit, err := engine.Visitor(s.JS)
		if err != nil {
			return err
		}
		doc.ExecuteFor(sel, visit)
	}
	return nil
}
