package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/pcomb/combinator"
)

// TreeEncoder prints a successful parse as an indented tree, one node per
// line with its position, and a failure as its message followed by the
// deepest failure when that differs.
type TreeEncoder struct {
	w   io.Writer
	out combinator.Outcome

	nameColor  *color.Color
	valueColor *color.Color
	grayColor  *color.Color
	failColor  *color.Color
}

func NewTreeEncoder(w io.Writer, colored bool) *TreeEncoder {
	return &TreeEncoder{
		w:          w,
		nameColor:  getColor(!colored, color.FgCyan),
		valueColor: getColor(!colored, color.FgGreen),
		grayColor:  getColor(!colored, color.Faint),
		failColor:  getColor(!colored, color.FgRed),
	}
}

func getColor(noColor bool, attributes ...color.Attribute) *color.Color {
	if noColor {
		c := color.New()
		c.DisableColor()
		return c
	}
	c := color.New(attributes...)
	c.EnableColor()
	return c
}

func (e *TreeEncoder) Encode(out combinator.Outcome) error {
	e.out = out
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if f := e.out.Failure; f != nil {
		sb.WriteString(e.failColor.Sprint(f.Message))
		sb.WriteString("\n")
		if d := f.Deepest(); d != f {
			fmt.Fprintf(&sb, "  %s %s\n", e.grayColor.Sprint("deepest:"), d.Message)
		}
		return []byte(sb.String()), nil
	}
	if e.out.Node != nil {
		e.writeNode(&sb, e.out.Node, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n *combinator.Node, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(e.nameColor.Sprint(n.Name))
	sb.WriteString(" ")
	sb.WriteString(e.grayColor.Sprint("[" + n.Pos.String() + "]"))
	switch p := n.Payload.(type) {
	case combinator.Rune:
		sb.WriteString(" " + e.valueColor.Sprintf("%q", rune(p)))
	case combinator.Text:
		sb.WriteString(" " + e.valueColor.Sprintf("%q", string(p)))
	case combinator.Opaque:
		sb.WriteString(" = " + e.valueColor.Sprint(p.Value))
	}
	if !n.Include {
		sb.WriteString(" " + e.grayColor.Sprint("(excluded)"))
	}
	sb.WriteString("\n")

	for _, child := range n.Children() {
		e.writeNode(sb, child, indent+1)
	}
}
