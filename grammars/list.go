package grammars

import "github.com/dhamidi/pcomb/combinator"

// List = "[" [ Item { "," Item } ] "]", Item = Digit | List
func init() {
	digit := oneOf(digits, combinator.Named("Digit"))
	list := combinator.Placeholder()
	item := combinator.Must(digit.Or(list).With(combinator.Named("Item")))

	next := combinator.Must(punct(',').And(item).With(combinator.Named("Next")))
	rest := combinator.Must(combinator.Closure(next, combinator.Named("Rest")))
	items := combinator.Must(item.And(rest).With(combinator.Named("Items")))
	elements := combinator.Must(combinator.Range(items, 0, 1, combinator.Named("Elements")))

	mustDefine(list, combinator.Must(punct('[').And(elements).And(punct(']')).With(combinator.Named("List"))))

	register(&Grammar{
		Name:        "list",
		Description: "bracketed, comma-separated digits and nested lists such as [1, [2, 3], []]",
		Root:        list,
	})
}
