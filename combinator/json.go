package combinator

import "encoding/json"

type jsonNode struct {
	Name     string      `json:"name"`
	Pos      jsonPos     `json:"pos"`
	Exclude  bool        `json:"exclude,omitempty"`
	Char     string      `json:"char,omitempty"`
	Text     *string     `json:"text,omitempty"`
	Value    any         `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonPos struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Name:    n.Name,
		Pos:     jsonPos{Offset: n.Pos.Offset, Line: n.Pos.Line, Column: n.Pos.Column},
		Exclude: !n.Include,
	}

	switch p := n.Payload.(type) {
	case Rune:
		jn.Char = string(rune(p))
	case Text:
		s := string(p)
		jn.Text = &s
	case Opaque:
		jn.Value = p.Encoded()
	}

	if children := n.Children(); len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
