package ebnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/pcomb/combinator"
)

func char(r rune) *combinator.Combinator {
	return combinator.Must(combinator.Char(r))
}

func TestDescribeRecursive(t *testing.T) {
	b := char('b')
	B := combinator.Placeholder()
	S := char('a').And(B)
	body := combinator.Must(combinator.Must(b.And(B).With()).Or(b).With(combinator.Named("B")))
	if err := B.Define(body); err != nil {
		t.Fatal(err)
	}

	got, err := Describe(S, "S")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	want := "S = \"a\" B .\nB = \"b\" B | \"b\" .\n"
	if got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
	if err := Verify(S, "S"); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestDescribeExpressions(t *testing.T) {
	x := char('x')
	ab := char('a').Or(char('b'))

	tests := []struct {
		name string
		root *combinator.Combinator
		want string
	}{
		{"string", combinator.Must(combinator.String("let")), `Start = "let" .`},
		{"sequence", char('x').And(char('y')), `Start = "x" "y" .`},
		{"choice", ab, `Start = "a" | "b" .`},
		{"nested choice", x.And(ab), `Start = "x" ( "a" | "b" ) .`},
		{"many", combinator.Must(combinator.Many(x)), `Start = "x" { "x" } .`},
		{"many choice", combinator.Must(combinator.Many(ab)), `Start = ( "a" | "b" ) { ( "a" | "b" ) } .`},
		{"closure", combinator.Must(combinator.Closure(x)), `Start = { "x" } .`},
		{"repeat", combinator.Must(combinator.Repeat(x, 3)), `Start = "x" "x" "x" .`},
		{"range", combinator.Must(combinator.Range(x, 1, 3)), `Start = "x" [ "x" [ "x" ] ] .`},
		{"range zero", combinator.Must(combinator.Range(x, 0, 0)), `Start = .`},
		{"more than", combinator.Must(combinator.MoreThan(x, 1)), `Start = "x" "x" { "x" } .`},
		{"less than", combinator.Must(combinator.LessThan(x, 3)), `Start = [ "x" [ "x" ] ] .`},
		{"empty operand", combinator.Must(combinator.Closure(combinator.Must(combinator.LessThan(x, 1)))), "Start = { Nothing } .\nNothing = ."},
		{"named composite", combinator.Must(combinator.Many(combinator.Must(x.And(char('y')).With(combinator.Named("pair"))))), "Start = Pair { Pair } .\nPair = \"x\" \"y\" ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Describe(tt.root, "")
			if err != nil {
				t.Fatalf("Describe: %v", err)
			}
			if got != tt.want+"\n" {
				t.Errorf("Describe() =\n%s\nwant\n%s", got, tt.want)
			}
			if err := Verify(tt.root, ""); err != nil {
				t.Errorf("Verify: %v\n%s", err, got)
			}
		})
	}
}

func TestDescribeUndefined(t *testing.T) {
	root := char('a').And(combinator.Placeholder())
	_, err := Describe(root, "S")
	if !errors.Is(err, combinator.ErrUndefined) {
		t.Errorf("Describe() error = %v, want ErrUndefined", err)
	}
}

func TestDescribeDeduplicatesNames(t *testing.T) {
	first := combinator.Must(char('x').And(char('y')).With(combinator.Named("item")))
	second := combinator.Must(char('u').And(char('v')).With(combinator.Named("Item")))
	root := combinator.Must(first.Or(second).With(combinator.Named("Item")))

	got, err := Describe(root, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Item = Item2 | Item3 .", "Item2 = \"x\" \"y\" .", "Item3 = \"u\" \"v\" ."} {
		if !strings.Contains(got, name) {
			t.Errorf("missing %q in\n%s", name, got)
		}
	}
	if err := Verify(root, ""); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"expr", "Expr"},
		{"Term", "Term"},
		{"key-value", "Keyvalue"},
		{"2x", "P2x"},
		{"_x", "P_x"},
		{"", "Rule"},
		{"Anonymous", "Rule"},
		{"ünïcode", "Ünïcode"},
	}
	for _, tt := range tests {
		if got := Identifier(tt.in); got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDescribeLargeCounts(t *testing.T) {
	x := char('x')
	sixteen := strings.TrimSpace(strings.Repeat(`"x" `, 16))

	tests := []struct {
		name string
		root *combinator.Combinator
		want string
	}{
		{"repeat at limit", combinator.Must(combinator.Repeat(x, 16)), "Start = " + sixteen + " ."},
		{"repeat over limit", combinator.Must(combinator.Repeat(x, 1000)), "Start = " + sixteen + ` { "x" } .`},
		{"range huge", combinator.Must(combinator.Range(x, 0, 1_000_000)), `Start = { "x" } .`},
		{"range low kept", combinator.Must(combinator.Range(x, 2, 1_000_000)), `Start = "x" "x" { "x" } .`},
		{"more than huge", combinator.Must(combinator.MoreThan(x, 100)), "Start = " + sixteen + ` { "x" } .`},
		{"less than huge", combinator.Must(combinator.LessThan(x, 1000)), `Start = { "x" } .`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Describe(tt.root, "")
			if err != nil {
				t.Fatalf("Describe: %v", err)
			}
			if got != tt.want+"\n" {
				t.Errorf("Describe() =\n%s\nwant\n%s", got, tt.want)
			}
			if err := Verify(tt.root, ""); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}
