package grammars

import "github.com/dhamidi/pcomb/combinator"

// S = "a" B, B = "b" B | "b"
func init() {
	a := combinator.Must(combinator.Char('a', combinator.Named("a")))
	b := combinator.Must(combinator.Char('b', combinator.Named("b")))

	B := combinator.Placeholder()
	S := combinator.Must(a.And(B).With(combinator.Named("S")))

	more := combinator.Must(b.And(B).With(combinator.Named("More")))
	mustDefine(B, combinator.Must(more.Or(b).With(combinator.Named("B"))))

	register(&Grammar{
		Name:        "ab",
		Description: "an a followed by one or more b",
		Root:        S,
	})
}
