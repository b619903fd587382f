package combinator

import (
	"strings"

	"github.com/tliron/commonlog"
)

// runState is shared by all combinators during one Run.
type runState struct {
	log   commonlog.Logger
	depth int
}

func (rs *runState) trace(c *Combinator, start Position, out Outcome) {
	if rs.log == nil {
		return
	}
	indent := strings.Repeat("  ", rs.depth)
	if out.OK() {
		rs.log.Debugf("%s%s %s %s..%s ok", indent, c.kind, c.name, start, out.End)
	} else {
		rs.log.Debugf("%s%s %s %s failed: %s", indent, c.kind, c.name, start, out.Failure.Message)
	}
}

// parse runs c at the cursor. On success the cursor is moved past the
// match; on failure it is left where it was.
func (c *Combinator) parse(cur *Cursor, rs *runState) Outcome {
	if c.kind == KindPlaceholder {
		if c.target == nil {
			f := failf(anonymous, cur.Position(), "Undefined combinator")
			return Outcome{Include: c.include, Failure: f, End: cur.Position()}
		}
		return c.target.parse(cur, rs)
	}

	start := cur.Position()
	rs.depth++

	var node *Node
	var f *Failure
	switch c.kind {
	case KindChar:
		node, f = c.parseLiteral(cur, string(c.char), Rune(c.char))
	case KindString:
		node, f = c.parseLiteral(cur, c.text, Text(c.text))
	case KindAnd:
		node, f = c.parseAnd(cur, rs)
	case KindOr:
		node, f = c.parseOr(cur, rs)
	case KindMany, KindClosure, KindRepeat, KindRange, KindMoreThan, KindLessThan:
		node, f = c.parseRepetition(cur, rs)
	default:
		f = failf(c.name, start, "Unknown combinator kind %d", int(c.kind))
	}

	rs.depth--

	var out Outcome
	if f != nil {
		out = Outcome{Include: c.include, Failure: f, End: cur.Position()}
	} else {
		out = Outcome{Include: c.include, Node: c.finish(node), End: cur.Position()}
	}
	rs.trace(c, start, out)
	return out
}

func (c *Combinator) finish(node *Node) *Node {
	node.Include = c.include
	if c.transform == nil {
		return node
	}
	if mapped := c.transform(node); mapped != nil {
		node = mapped
		node.Include = c.include
	}
	return node
}

func (c *Combinator) parseLiteral(cur *Cursor, literal string, payload Payload) (*Node, *Failure) {
	work := cur.Copy()
	if !work.Match(literal) {
		return nil, failf(c.name, work.Position(), "Expected %s", literal)
	}
	node := &Node{Name: c.name, Pos: work.Position(), Payload: payload}
	work.Consume(literal)
	cur.restore(work)
	return node, nil
}

func (c *Combinator) parseAnd(cur *Cursor, rs *runState) (*Node, *Failure) {
	start := cur.Position()
	work := cur.Copy()

	children := make(Children, 0, len(c.operands))
	for _, operand := range c.operands {
		out := operand.parse(work, rs)
		if !out.OK() {
			f := failf(c.name, start, "(%s)", out.Failure.Message)
			f.Cause = out.Failure
			return nil, f
		}
		children = append(children, out.Node)
	}

	cur.restore(work)
	return &Node{Name: c.name, Pos: start, Payload: children}, nil
}

func (c *Combinator) parseOr(cur *Cursor, rs *runState) (*Node, *Failure) {
	start := cur.Position()

	var furthest *Failure
	for _, alt := range c.operands {
		work := cur.Copy()
		out := alt.parse(work, rs)
		if out.OK() {
			cur.restore(work)
			return &Node{Name: c.name, Pos: start, Payload: Child{Node: out.Node}}, nil
		}
		if furthest == nil || out.Failure.Deepest().Pos.Offset > furthest.Deepest().Pos.Offset {
			furthest = out.Failure
		}
	}

	names := make([]string, len(c.operands))
	for i, alt := range c.operands {
		names[i] = alt.Name()
	}
	f := failf(c.name, start, "Expected one of %s", strings.Join(names, ", "))
	f.Cause = furthest
	return nil, f
}

// oneOrMore greedily matches c against cur, collecting nodes until c
// fails. It returns the collected nodes, possibly none, and the failure
// that ended the run. A match that consumes nothing ends the run too.
func (c *Combinator) oneOrMore(cur *Cursor, rs *runState) (Children, *Failure) {
	items := Children{}
	for {
		before := cur.offset
		out := c.parse(cur, rs)
		if !out.OK() {
			return items, out.Failure
		}
		items = append(items, out.Node)
		if cur.offset == before {
			return items, nil
		}
	}
}

func (c *Combinator) parseRepetition(cur *Cursor, rs *runState) (*Node, *Failure) {
	start := cur.Position()
	work := cur.Copy()
	operand := c.operands[0]

	items, last := operand.oneOrMore(work, rs)
	n := len(items)

	var f *Failure
	short := false
	switch c.kind {
	case KindMany:
		if n == 0 {
			f, short = failf(c.name, start, "Expected %s", operand.Name()), true
		}
	case KindRepeat:
		if n != c.times {
			f, short = failf(c.name, start, "Expected exactly %d of %s", c.times, operand.Name()), n < c.times
		}
	case KindRange:
		if n < c.low || n > c.high {
			f, short = failf(c.name, start, "Expected %d-%d of %s", c.low, c.high, operand.Name()), n < c.low
		}
	case KindMoreThan:
		if n <= c.amount {
			f, short = failf(c.name, start, "Expected more than %d of %s", c.amount, operand.Name()), true
		}
	case KindLessThan:
		if n >= c.amount {
			f = failf(c.name, start, "Expected less than %d of %s", c.amount, operand.Name())
		}
	}
	if f != nil {
		if short {
			f.Cause = last
		}
		return nil, f
	}

	cur.restore(work)
	return &Node{Name: c.name, Pos: start, Payload: items}, nil
}
