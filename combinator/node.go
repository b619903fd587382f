package combinator

import (
	"fmt"
	"strings"
)

// Payload is the content of a Node. It is one of Rune, Text, Child,
// Children or Opaque.
type Payload interface {
	payload()
}

// Rune is the payload of a node produced by a character literal.
type Rune rune

// Text is the payload of a node produced by a string literal.
type Text string

// Child is the payload of a node wrapping exactly one other node, as
// produced by ordered choice.
type Child struct {
	Node *Node
}

// Children is the payload of a node produced by a sequence or a repetition.
type Children []*Node

// Opaque holds an arbitrary value, typically installed by a Transform.
type Opaque struct {
	Value any
}

// Encoded returns Value in a form the JSON and YAML encoders can
// represent. Errors are reduced to their message.
func (o Opaque) Encoded() any {
	if err, ok := o.Value.(error); ok {
		return err.Error()
	}
	return o.Value
}

func (Rune) payload()     {}
func (Text) payload()     {}
func (Child) payload()    {}
func (Children) payload() {}
func (Opaque) payload()   {}

// Node is an element of the parse tree.
type Node struct {
	Name    string
	Pos     Position
	Include bool
	Payload Payload
}

// Children returns the direct child nodes: the list for sequences and
// repetitions, the single wrapped node for choices, nil for leaves.
func (n *Node) Children() []*Node {
	switch p := n.Payload.(type) {
	case Children:
		return p
	case Child:
		if p.Node == nil {
			return nil
		}
		return []*Node{p.Node}
	}
	return nil
}

func (n *Node) IsLeaf() bool {
	switch n.Payload.(type) {
	case Rune, Text, Opaque, nil:
		return true
	}
	return false
}

// Text concatenates the literal text matched by the subtree, without the
// insignificant whitespace between literals.
func (n *Node) Text() string {
	var sb strings.Builder
	n.Walk(func(m *Node) {
		switch p := m.Payload.(type) {
		case Rune:
			sb.WriteRune(rune(p))
		case Text:
			sb.WriteString(string(p))
		}
	})
	return sb.String()
}

// Value returns the value of an Opaque payload, or nil.
func (n *Node) Value() any {
	if p, ok := n.Payload.(Opaque); ok {
		return p.Value
	}
	return nil
}

// Walk calls fn for n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		child.Walk(fn)
	}
}

// Prune returns a copy of the tree without the nodes whose producing
// combinator was marked as excluded. The root is always kept.
func (n *Node) Prune() *Node {
	if n == nil {
		return nil
	}
	out := *n
	switch p := n.Payload.(type) {
	case Children:
		kept := make(Children, 0, len(p))
		for _, child := range p {
			if child == nil || !child.Include {
				continue
			}
			kept = append(kept, child.Prune())
		}
		out.Payload = kept
	case Child:
		if p.Node != nil && p.Node.Include {
			out.Payload = Child{Node: p.Node.Prune()}
		} else {
			out.Payload = Children{}
		}
	}
	return &out
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := strings.Repeat("  ", indent)

	result := prefix + n.Name
	if showPositions {
		result += " [" + n.Pos.String() + "]"
	}
	switch p := n.Payload.(type) {
	case Rune:
		result += fmt.Sprintf(" %q", rune(p))
	case Text:
		result += fmt.Sprintf(" %q", string(p))
	case Opaque:
		result += fmt.Sprintf(" = %v", p.Value)
	}
	result += "\n"

	for _, child := range n.Children() {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
