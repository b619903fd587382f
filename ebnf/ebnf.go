// Package ebnf renders combinator graphs as EBNF in the notation of
// golang.org/x/exp/ebnf, so that a grammar built in code can be read,
// documented and checked for unreachable or undefined productions.
//
// Every placeholder, every named composite and the root get their own
// production. Literals become tokens. Repetitions are expanded:
//
//	Many(p)           p { p }
//	Closure(p)        { p }
//	Repeat(p, 3)      p p p
//	Range(p, 1, 3)    p [ p [ p ] ]
//	MoreThan(p, 1)    p p { p }
//	LessThan(p, 3)    [ p [ p ] ]
//
// Counts above 16 are approximated by an open repetition, so
// Range(p, 0, 1000) becomes { p }. A repetition that can only match
// nothing refers to a production with an empty body.
package ebnf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	xebnf "golang.org/x/exp/ebnf"

	"github.com/dhamidi/pcomb/combinator"
)

const anonymous = "Anonymous"

// maxUnrolled is the largest count of copies written out for a counted
// repetition.
const maxUnrolled = 16

type renderer struct {
	names   map[*combinator.Combinator]string
	used    map[string]bool
	order   []*combinator.Combinator
	nothing string
}

// Describe returns the productions for the grammar rooted at root, the
// start production first. An empty start names the start production
// after the root.
func Describe(root *combinator.Combinator, start string) (string, error) {
	text, _, err := describe(root, start)
	return text, err
}

// Verify renders the grammar and checks it with the x/exp/ebnf verifier.
func Verify(root *combinator.Combinator, start string) error {
	text, startName, err := describe(root, start)
	if err != nil {
		return err
	}
	grammar, err := xebnf.Parse(startName+".ebnf", strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("parse rendered grammar: %w", err)
	}
	if err := xebnf.Verify(grammar, startName); err != nil {
		return fmt.Errorf("verify rendered grammar: %w", err)
	}
	return nil
}

func describe(root *combinator.Combinator, start string) (string, string, error) {
	if err := combinator.Check(root); err != nil {
		return "", "", fmt.Errorf("describe grammar: %w", err)
	}

	r := &renderer{
		names: make(map[*combinator.Combinator]string),
		used:  make(map[string]bool),
	}

	if start == "" {
		start = root.Name()
		if start == anonymous {
			start = "Start"
		}
	}
	startName := r.assign(resolve(root), start)

	combinator.Walk(root, func(c *combinator.Combinator) {
		switch {
		case c.IsPlaceholder():
			r.assign(resolve(c), c.Name())
		case c.Name() != anonymous && isComposite(c):
			r.assign(c, c.Name())
		}
	})

	var sb strings.Builder
	for i := 0; i < len(r.order); i++ {
		c := r.order[i]
		fmt.Fprintf(&sb, "%s = %s.\n", r.names[c], spaced(r.expr(c, true)))
	}
	if r.nothing != "" {
		fmt.Fprintf(&sb, "%s = .\n", r.nothing)
	}
	return sb.String(), startName, nil
}

// resolve follows placeholder definitions to the combinator that does
// the matching.
func resolve(c *combinator.Combinator) *combinator.Combinator {
	for c.IsPlaceholder() && c.Target() != nil {
		c = c.Target()
	}
	return c
}

func isComposite(c *combinator.Combinator) bool {
	switch c.Kind() {
	case combinator.KindChar, combinator.KindString, combinator.KindPlaceholder:
		return false
	}
	return true
}

func (r *renderer) assign(c *combinator.Combinator, name string) string {
	if existing, ok := r.names[c]; ok {
		return existing
	}
	name = r.allocate(name)
	r.names[c] = name
	r.order = append(r.order, c)
	return name
}

func (r *renderer) allocate(name string) string {
	base := Identifier(name)
	name = base
	for i := 2; r.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	r.used[name] = true
	return name
}

func (r *renderer) empty() string {
	if r.nothing == "" {
		r.nothing = r.allocate("Nothing")
	}
	return r.nothing
}

// expr renders c as an expression. top is set when rendering the body of
// c's own production.
func (r *renderer) expr(c *combinator.Combinator, top bool) string {
	c = resolve(c)
	if name, ok := r.names[c]; ok && !top {
		return name
	}

	switch c.Kind() {
	case combinator.KindChar, combinator.KindString:
		return strconv.Quote(c.Literal())

	case combinator.KindAnd:
		var parts []string
		for _, op := range c.Operands() {
			parts = append(parts, r.expr(op, false))
		}
		return join(parts...)

	case combinator.KindOr:
		alts := make([]string, 0, len(c.Operands()))
		for _, op := range c.Operands() {
			alts = append(alts, r.nonEmpty(op))
		}
		body := strings.Join(alts, " | ")
		if top || len(alts) == 1 {
			return body
		}
		return "( " + body + " )"
	}

	e := r.nonEmpty(c.Operands()[0])
	switch c.Kind() {
	case combinator.KindMany:
		return counted(e, 1, -1)
	case combinator.KindClosure:
		return counted(e, 0, -1)
	case combinator.KindRepeat:
		return counted(e, c.Times(), c.Times())
	case combinator.KindRange:
		low, high := c.Bounds()
		return counted(e, low, high)
	case combinator.KindMoreThan:
		return counted(e, c.Amount()+1, -1)
	case combinator.KindLessThan:
		return counted(e, 0, c.Amount()-1)
	}
	return ""
}

// counted renders between low and high occurrences of e; a negative high
// is unbounded. Counts above maxUnrolled are not written out: the result
// then accepts at least min(low, maxUnrolled) occurrences and any number
// beyond.
func counted(e string, low, high int) string {
	if high >= 0 && high <= maxUnrolled {
		return join(repeat(e, low), optional(e, high-low))
	}
	return join(repeat(e, min(low, maxUnrolled)), "{ "+e+" }")
}

func (r *renderer) nonEmpty(c *combinator.Combinator) string {
	if e := r.expr(c, false); e != "" {
		return e
	}
	return r.empty()
}

func repeat(e string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = e
	}
	return join(parts...)
}

// optional nests n optional occurrences: [ e [ e ] ].
func optional(e string, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s = "[ " + join(e, s) + " ]"
	}
	return s
}

func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func spaced(s string) string {
	if s == "" {
		return ""
	}
	return s + " "
}

// Identifier turns a combinator name into a production name accepted by
// x/exp/ebnf as non-lexical: letters, digits and underscores, starting
// with an upper-case letter.
func Identifier(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		}
	}
	id := sb.String()
	if id == "" || id == anonymous {
		return "Rule"
	}
	first := []rune(id)[0]
	upper := unicode.ToUpper(first)
	if !unicode.IsLetter(first) || !unicode.IsUpper(upper) {
		return "P" + id
	}
	return string(upper) + id[len(string(first)):]
}
