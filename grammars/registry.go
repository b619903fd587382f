// Package grammars holds ready-made grammars built with the combinator
// package. They back the CLI, the language server and the playground.
package grammars

import (
	"sort"

	"github.com/dhamidi/pcomb/combinator"
)

type Grammar struct {
	Name        string
	Description string
	Root        *combinator.Combinator
}

var registry = map[string]*Grammar{}

func register(g *Grammar) {
	if _, dup := registry[g.Name]; dup {
		panic("grammars: duplicate grammar " + g.Name)
	}
	if err := combinator.Check(g.Root); err != nil {
		panic("grammars: " + g.Name + ": " + err.Error())
	}
	registry[g.Name] = g
}

func Lookup(name string) (*Grammar, bool) {
	g, ok := registry[name]
	return g, ok
}

// Names returns the registered grammar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func All() []*Grammar {
	var all []*Grammar
	for _, name := range Names() {
		all = append(all, registry[name])
	}
	return all
}

// oneOf matches any single character of chars.
func oneOf(chars string, opts ...combinator.Option) *combinator.Combinator {
	var c *combinator.Combinator
	for _, r := range chars {
		ch := combinator.Must(combinator.Char(r))
		if c == nil {
			c = ch
			continue
		}
		c = c.Or(ch)
	}
	return combinator.Must(c.With(opts...))
}

func mustDefine(p, def *combinator.Combinator) {
	if err := p.Define(def); err != nil {
		panic(err)
	}
}

func punct(r rune) *combinator.Combinator {
	return combinator.Must(combinator.Char(r, combinator.Named(string(r)), combinator.Excluded()))
}

const (
	digits  = "0123456789"
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)
