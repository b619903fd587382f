package combinator

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
)

type RunOption func(*runConfig)

type runConfig struct {
	requireEOF bool
	log        commonlog.Logger
}

// RequireEOF makes a run fail unless the root consumes the whole input,
// ignoring trailing whitespace.
func RequireEOF() RunOption {
	return func(c *runConfig) {
		c.requireEOF = true
	}
}

// WithLogger traces every combinator attempt at debug level.
func WithLogger(log commonlog.Logger) RunOption {
	return func(c *runConfig) {
		c.log = log
	}
}

// Run parses input with root, starting from a fresh cursor.
func Run(root *Combinator, input string, opts ...RunOption) Outcome {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	cur := NewCursor(input)
	if root == nil {
		f := failf(anonymous, cur.Position(), "Undefined combinator")
		return Outcome{Failure: f, End: cur.Position()}
	}

	out := root.parse(cur, &runState{log: cfg.log})
	if !out.OK() || !cfg.requireEOF {
		return out
	}

	rest := cur.Copy()
	rest.SkipWhitespace()
	if !rest.AtEnd() {
		f := failf(root.Name(), rest.Position(), "Expected end of input")
		return Outcome{Include: out.Include, Failure: f, End: NewCursor(input).Position()}
	}
	return out
}

// Parse is Run returning the tree, or the failure as an error.
func Parse(root *Combinator, input string, opts ...RunOption) (*Node, error) {
	out := Run(root, input, opts...)
	if err := out.Err(); err != nil {
		return nil, err
	}
	return out.Node, nil
}

// Walk calls fn once for every combinator reachable from root, including
// placeholders and their definitions. Cycles are followed only once.
func Walk(root *Combinator, fn func(*Combinator)) {
	seen := make(map[*Combinator]bool)
	var visit func(*Combinator)
	visit = func(c *Combinator) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		fn(c)
		if c.kind == KindPlaceholder {
			visit(c.target)
			return
		}
		for _, op := range c.operands {
			visit(op)
		}
	}
	visit(root)
}

// Check reports the first undefined placeholder reachable from root.
func Check(root *Combinator) error {
	if root == nil {
		return &ConstructionError{Op: "Check", Err: ErrNilCombinator}
	}
	seen := make(map[*Combinator]bool)
	var visit func(c *Combinator, path []string) error
	visit = func(c *Combinator, path []string) error {
		if seen[c] {
			return nil
		}
		seen[c] = true
		path = append(path, c.kind.String()+"("+c.name+")")
		if c.kind == KindPlaceholder {
			if c.target == nil {
				return fmt.Errorf("%s: %w", strings.Join(path, " > "), ErrUndefined)
			}
			return visit(c.target, path)
		}
		for _, op := range c.operands {
			if err := visit(op, path); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root, nil)
}
