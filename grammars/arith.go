package grammars

import (
	"errors"
	"math"
	"strconv"

	"github.com/dhamidi/pcomb/combinator"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
)

// Expr   = Term { ( "+" | "-" ) Term }
// Term   = Factor { ( "*" | "/" ) Factor }
// Factor = Number | "(" Expr ")"
//
// Every level is mapped to an Opaque node holding an int, or an error
// once a division by zero or an overflow occurred, in a literal or in an
// operation. The root node's Value is the result of the expression.
func init() {
	number := combinator.Must(combinator.Many(oneOf(digits, combinator.Named("Digit")),
		combinator.Named("Number"), combinator.Mapped(evalNumber)))

	expr := combinator.Placeholder()
	group := combinator.Must(punct('(').And(expr).And(punct(')')).With(combinator.Named("Group")))
	factor := combinator.Must(number.Or(group).With(combinator.Named("Factor"), combinator.Mapped(evalFactor)))

	term := binary("Term", "*/", factor)
	mustDefine(expr, binary("Expr", "+-", term))

	register(&Grammar{
		Name:        "arith",
		Description: "integer arithmetic with + - * / and parentheses, evaluated while parsing",
		Root:        expr,
	})
}

// binary builds operand { op operand } folded left to right.
func binary(name, ops string, operand *combinator.Combinator) *combinator.Combinator {
	op := oneOf(ops, combinator.Named(name+"Op"))
	step := combinator.Must(op.And(operand).With(combinator.Named(name + "Step")))
	tail := combinator.Must(combinator.Closure(step, combinator.Named(name+"Tail")))
	return combinator.Must(operand.And(tail).With(combinator.Named(name), combinator.Mapped(evalBinary)))
}

func opaque(n *combinator.Node, v any) *combinator.Node {
	return &combinator.Node{Name: n.Name, Pos: n.Pos, Payload: combinator.Opaque{Value: v}}
}

func evalNumber(n *combinator.Node) *combinator.Node {
	v, err := strconv.Atoi(n.Text())
	if errors.Is(err, strconv.ErrRange) {
		return opaque(n, ErrOverflow)
	}
	if err != nil {
		return opaque(n, err)
	}
	return opaque(n, v)
}

func evalFactor(n *combinator.Node) *combinator.Node {
	chosen := n.Children()[0]
	if chosen.Name == "Group" {
		return opaque(n, chosen.Children()[1].Value())
	}
	return opaque(n, chosen.Value())
}

func evalBinary(n *combinator.Node) *combinator.Node {
	children := n.Children()
	acc := children[0].Value()
	for _, step := range children[1].Children() {
		parts := step.Children()
		acc = apply(parts[0].Text(), acc, parts[1].Value())
	}
	return opaque(n, acc)
}

func apply(op string, left, right any) any {
	l, ok := left.(int)
	if !ok {
		return left
	}
	r, ok := right.(int)
	if !ok {
		return right
	}
	switch op {
	case "+":
		if (r > 0 && l > math.MaxInt-r) || (r < 0 && l < math.MinInt-r) {
			return ErrOverflow
		}
		return l + r
	case "-":
		if (r < 0 && l > math.MaxInt+r) || (r > 0 && l < math.MinInt+r) {
			return ErrOverflow
		}
		return l - r
	case "*":
		if l == 0 || r == 0 {
			return 0
		}
		p := l * r
		if p/r != l || (l == -1 && r == math.MinInt) || (r == -1 && l == math.MinInt) {
			return ErrOverflow
		}
		return p
	case "/":
		if r == 0 {
			return ErrDivisionByZero
		}
		if l == math.MinInt && r == -1 {
			return ErrOverflow
		}
		return l / r
	}
	return l
}
