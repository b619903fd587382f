// Package combinator provides a recursive-descent parser-combinator engine.
//
// # Overview
//
// A grammar is a graph of *Combinator values assembled once and run
// against any number of inputs:
//
//	a := combinator.Must(combinator.Char('a'))
//	b := combinator.Must(combinator.Char('b'))
//	B := combinator.Placeholder()
//	S := a.And(B)
//	if err := B.Define(b.And(B).Or(b)); err != nil {
//	    return err
//	}
//	out := combinator.Run(S, "abbb")
//
// # Combinators
//
//	Char, String              literal matchers
//	a.And(b)                  sequence, flattened: a.And(b).And(c) has three operands
//	a.Or(b)                   ordered choice, the first matching alternative wins
//	Many                      one or more
//	Closure                   zero or more, never fails
//	Repeat(p, n)              greedy run of exactly n
//	Range(p, low, high)       greedy run of low..high, low may be zero
//	MoreThan(p, n)            greedy run longer than n
//	LessThan(p, n)            greedy run shorter than n
//	Placeholder, Define       forward references for recursive grammars
//
// Builders validate their arguments and return a *ConstructionError;
// nothing is validated at parse time.
//
// # Whitespace
//
// Before each literal the cursor skips spaces, tabs, carriage returns
// and newlines. Whitespace is never part of a node.
//
// # Results
//
// Run returns an Outcome holding either a *Node or a *Failure. A failed
// attempt never moves the cursor: sequences and choices work on copies
// and commit only on success, and so does every other combinator.
//
// Failure messages embed the combinator name and the 1-based line:column,
// for example
//
//	Anonymous Parsing Error: (Anonymous Parsing Error: Expected a (1:1)) (1:1)
//
// # Include flags
//
// Every node records whether its combinator was Excluded. Collectors keep
// all children regardless; Node.Prune drops the excluded ones afterwards.
//
// # Thread Safety
//
// Combinators are not modified by Run, and With returns a copy instead
// of changing its receiver, so a complete grammar may be shared between
// goroutines. Define is the only mutation; call it before the first Run.
package combinator
