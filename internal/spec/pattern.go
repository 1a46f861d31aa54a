package spec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pattern is one behavior requirement: either legacy free text matched
// by keywords, or a structured `{type, ...params}` object dispatched
// by (framework, type) to a dedicated validator.
type Pattern struct {
	// Text holds a legacy free-text pattern. Empty for structured
	// patterns.
	Text string

	// Kind is the structured type discriminator. Empty for legacy
	// patterns.
	Kind string

	// Params carries the remaining structured fields verbatim.
	Params map[string]any
}

// Structured reports whether the pattern carries a type discriminator.
func (p Pattern) Structured() bool { return p.Kind != "" }

// Describe renders the pattern for feedback details.
func (p Pattern) Describe() string {
	if p.Structured() {
		if name := p.String("name"); name != "" {
			return p.Kind + " " + name
		}
		return p.Kind
	}
	return p.Text
}

// String returns a string-valued param, or "" when absent or not a
// string.
func (p Pattern) String(key string) string {
	if v, ok := p.Params[key].(string); ok {
		return v
	}
	return ""
}

// StringSlice returns a list-valued param with every element rendered
// as a string.
func (p Pattern) StringSlice(key string) []string {
	raw, ok := p.Params[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// Bool returns a bool-valued param, false when absent.
func (p Pattern) Bool(key string) bool {
	v, _ := p.Params[key].(bool)
	return v
}

// Int returns an int-valued param, handling the json float decoding.
func (p Pattern) Int(key string) int {
	switch v := p.Params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (p *Pattern) fromMap(m map[string]any) error {
	kind, _ := m["type"].(string)
	if kind == "" {
		return fmt.Errorf("structured pattern requires a type discriminator")
	}
	p.Kind = kind
	p.Params = make(map[string]any, len(m)-1)
	for k, v := range m {
		if k != "type" {
			p.Params[k] = v
		}
	}
	return nil
}

func (p *Pattern) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.Text)
	case yaml.MappingNode:
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return err
		}
		return p.fromMap(m)
	default:
		return fmt.Errorf("pattern must be a string or a mapping, got yaml kind %d", node.Kind)
	}
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		p.Text = text
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("pattern must be a string or an object: %w", err)
	}
	return p.fromMap(m)
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	if !p.Structured() {
		return json.Marshal(p.Text)
	}
	m := make(map[string]any, len(p.Params)+1)
	for k, v := range p.Params {
		m[k] = v
	}
	m["type"] = p.Kind
	return json.Marshal(m)
}

// ClassReq is a required class. The short YAML form is a bare name;
// the detailed form adds inheritance and method requirements.
type ClassReq struct {
	Name        string   `yaml:"name" json:"name"`
	ParentClass string   `yaml:"parent_class" json:"parent_class,omitempty"`
	Methods     []string `yaml:"methods" json:"methods,omitempty"`

	// Detailed distinguishes the object form: only then do
	// sub-requirement checks apply.
	Detailed bool `yaml:"-" json:"-"`
}

func (c *ClassReq) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Name)
	}
	type plain ClassReq
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Detailed = true
	return nil
}

func (c *ClassReq) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		return nil
	}
	type plain ClassReq
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	c.Detailed = true
	return nil
}

// FuncReq is a required function. The short form is a bare name.
type FuncReq struct {
	Name         string   `yaml:"name" json:"name"`
	Params       []string `yaml:"params" json:"params,omitempty"`
	Type         string   `yaml:"type" json:"type,omitempty"` // e.g. functional_component
	HasPropTypes bool     `yaml:"has_prop_types" json:"has_prop_types,omitempty"`
	HasExport    bool     `yaml:"has_export" json:"has_export,omitempty"`

	Detailed bool `yaml:"-" json:"-"`
}

func (f *FuncReq) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&f.Name)
	}
	type plain FuncReq
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	f.Detailed = true
	return nil
}

func (f *FuncReq) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		f.Name = name
		return nil
	}
	type plain FuncReq
	if err := json.Unmarshal(data, (*plain)(f)); err != nil {
		return err
	}
	f.Detailed = true
	return nil
}
