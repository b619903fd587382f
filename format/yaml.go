package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/pcomb/combinator"
)

type YAMLEncoder struct {
	w   io.Writer
	out combinator.Outcome
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(out combinator.Outcome) error {
	e.out = out
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(outcomeToYAML(e.out))
}

type yamlOutcome struct {
	OK    bool         `yaml:"ok"`
	Node  *yamlNode    `yaml:"node,omitempty"`
	Error *jsonFailure `yaml:"error,omitempty"`
	End   string       `yaml:"end"`
}

type yamlNode struct {
	Name     string      `yaml:"name"`
	Pos      string      `yaml:"pos"`
	Exclude  bool        `yaml:"exclude,omitempty"`
	Char     string      `yaml:"char,omitempty"`
	Text     *string     `yaml:"text,omitempty"`
	Value    any         `yaml:"value,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

func outcomeToYAML(out combinator.Outcome) *yamlOutcome {
	yo := &yamlOutcome{
		OK:  out.OK(),
		End: out.End.String(),
	}
	if out.Node != nil {
		yo.Node = nodeToYAML(out.Node)
	}
	if out.Failure != nil {
		yo.Error = failureToJSON(out.Failure)
	}
	return yo
}

func nodeToYAML(n *combinator.Node) *yamlNode {
	yn := &yamlNode{
		Name:    n.Name,
		Pos:     n.Pos.String(),
		Exclude: !n.Include,
	}

	switch p := n.Payload.(type) {
	case combinator.Rune:
		yn.Char = string(rune(p))
	case combinator.Text:
		s := string(p)
		yn.Text = &s
	case combinator.Opaque:
		yn.Value = p.Encoded()
	}

	for _, child := range n.Children() {
		yn.Children = append(yn.Children, nodeToYAML(child))
	}
	return yn
}
