package grammars

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/dhamidi/pcomb/combinator"
	"github.com/dhamidi/pcomb/ebnf"
)

func mustLookup(t *testing.T, name string) *Grammar {
	t.Helper()
	g, ok := Lookup(name)
	if !ok {
		t.Fatalf("grammar %q not registered", name)
	}
	return g
}

func TestRegistry(t *testing.T) {
	if got := strings.Join(Names(), ","); got != "ab,arith,kv,list" {
		t.Errorf("Names() = %s", got)
	}
	if _, ok := Lookup("json"); ok {
		t.Error("Lookup(json) found a grammar")
	}
	for _, g := range All() {
		if g.Description == "" {
			t.Errorf("%s has no description", g.Name)
		}
		if err := ebnf.Verify(g.Root, ""); err != nil {
			t.Errorf("%s: ebnf.Verify: %v", g.Name, err)
		}
	}
}

func TestGrammars(t *testing.T) {
	tests := []struct {
		grammar string
		input   string
		ok      bool
	}{
		{"ab", "abbb", true},
		{"ab", "a b", true},
		{"ab", "bbb", false},
		{"ab", "a", false},
		{"ab", "abc", false},
		{"list", "[]", true},
		{"list", "[1]", true},
		{"list", "[1, [2, 3], []]", true},
		{"list", "[1,]", false},
		{"list", "[1 2]", false},
		{"list", "[[]", false},
		{"arith", "1 + 2", true},
		{"arith", "(1)", true},
		{"arith", "1 +", false},
		{"arith", "(1 + 2", false},
		{"kv", "", true},
		{"kv", "name = pcomb; level = 3;", true},
		{"kv", "empty = ;", true},
		{"kv", "url = https://example.com/x;", true},
		{"kv", "name = pcomb", false},
		{"kv", "= x;", false},
		{"kv", strings.Repeat("k", 33) + " = x;", false},
		{"kv", "k = " + strings.Repeat("v", 65) + ";", false},
	}

	for _, tt := range tests {
		t.Run(tt.grammar+"/"+tt.input, func(t *testing.T) {
			g := mustLookup(t, tt.grammar)
			out := combinator.Run(g.Root, tt.input, combinator.RequireEOF())
			if out.OK() != tt.ok {
				t.Errorf("OK() = %v, want %v: %v", out.OK(), tt.ok, out)
			}
		})
	}
}

func TestArithValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"42", 42},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"7 - 2 - 1", 4},
		{"20 / 3 / 2", 3},
		{"((2))", 2},
		{"1 + 8 / (2 - 2)", ErrDivisionByZero},
		{"99999999999999999999999", ErrOverflow},
		{strconv.Itoa(math.MaxInt) + " + 1", ErrOverflow},
		{"0 - " + strconv.Itoa(math.MaxInt) + " - 2", ErrOverflow},
		{strconv.Itoa(math.MaxInt/2+1) + " * 2", ErrOverflow},
		{strconv.Itoa(math.MaxInt) + " - 1 + 1", math.MaxInt},
		{"0 * " + strconv.Itoa(math.MaxInt), 0},
	}

	g := mustLookup(t, "arith")
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := combinator.Parse(g.Root, tt.input, combinator.RequireEOF())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := node.Value()
			if wantErr, ok := tt.want.(error); ok {
				if err, _ := got.(error); !errors.Is(err, wantErr) {
					t.Errorf("Value() = %v, want %v", got, wantErr)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListPrunesPunctuation(t *testing.T) {
	g := mustLookup(t, "list")
	node, err := combinator.Parse(g.Root, "[1, 2]", combinator.RequireEOF())
	if err != nil {
		t.Fatal(err)
	}
	if got := node.Text(); got != "[1,2]" {
		t.Errorf("Text() = %q", got)
	}
	if got := node.Prune().Text(); got != "12" {
		t.Errorf("pruned Text() = %q, want 12", got)
	}
}

func TestKVFailureMessage(t *testing.T) {
	g := mustLookup(t, "kv")
	out := combinator.Run(g.Root, "a = b;\n"+strings.Repeat("k", 33)+" = x;", combinator.RequireEOF())
	if out.OK() {
		t.Fatal("expected failure")
	}
	if want := "Config Parsing Error: Expected end of input (2:1)"; out.Failure.Message != want {
		t.Errorf("Message = %q, want %q", out.Failure.Message, want)
	}
}
