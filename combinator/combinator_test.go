package combinator

import (
	"errors"
	"testing"
)

func TestConstructionErrors(t *testing.T) {
	b := Must(Char('b'))

	tests := []struct {
		name  string
		build func() (*Combinator, error)
		want  error
	}{
		{"negative rune", func() (*Combinator, error) { return Char(-1) }, ErrInvalidChar},
		{"surrogate rune", func() (*Combinator, error) { return Char(0xD800) }, ErrInvalidChar},
		{"empty string", func() (*Combinator, error) { return String("") }, ErrEmptyString},
		{"empty name", func() (*Combinator, error) { return Char('a', Named("")) }, ErrEmptyName},
		{"many nil", func() (*Combinator, error) { return Many(nil) }, ErrNilCombinator},
		{"closure nil", func() (*Combinator, error) { return Closure(nil) }, ErrNilCombinator},
		{"repeat zero", func() (*Combinator, error) { return Repeat(b, 0) }, ErrInvalidTimes},
		{"repeat negative", func() (*Combinator, error) { return Repeat(b, -2) }, ErrInvalidTimes},
		{"repeat nil", func() (*Combinator, error) { return Repeat(nil, 2) }, ErrNilCombinator},
		{"range inverted", func() (*Combinator, error) { return Range(b, 3, 2) }, ErrInvalidBounds},
		{"range negative low", func() (*Combinator, error) { return Range(b, -1, 2) }, ErrInvalidBounds},
		{"more than negative", func() (*Combinator, error) { return MoreThan(b, -1) }, ErrInvalidAmount},
		{"less than zero", func() (*Combinator, error) { return LessThan(b, 0) }, ErrInvalidAmount},
		{"wrap literal", func() (*Combinator, error) { return b.Wrap() }, ErrNotComposite},
		{"with on placeholder", func() (*Combinator, error) { return Placeholder().With(Named("p")) }, ErrPlaceholderOpts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			if err == nil {
				t.Fatalf("expected error, got combinator %v", c.Kind())
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			var ce *ConstructionError
			if !errors.As(err, &ce) {
				t.Errorf("error %T is not a *ConstructionError", err)
			}
		})
	}
}

func TestValidConstruction(t *testing.T) {
	b := Must(Char('b'))

	tests := []struct {
		name  string
		build func() (*Combinator, error)
		kind  Kind
	}{
		{"char", func() (*Combinator, error) { return Char('λ') }, KindChar},
		{"string", func() (*Combinator, error) { return String("let") }, KindString},
		{"many", func() (*Combinator, error) { return Many(b) }, KindMany},
		{"closure", func() (*Combinator, error) { return Closure(b) }, KindClosure},
		{"repeat", func() (*Combinator, error) { return Repeat(b, 1) }, KindRepeat},
		{"range empty", func() (*Combinator, error) { return Range(b, 0, 0) }, KindRange},
		{"more than zero", func() (*Combinator, error) { return MoreThan(b, 0) }, KindMoreThan},
		{"less than one", func() (*Combinator, error) { return LessThan(b, 1) }, KindLessThan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", c.Kind(), tt.kind)
			}
			if c.Name() != "Anonymous" {
				t.Errorf("Name() = %q, want Anonymous", c.Name())
			}
			if !c.Include() {
				t.Error("Include() = false, want true by default")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	c := Must(String("if", Named("If"), Excluded()))
	if c.Name() != "If" {
		t.Errorf("Name() = %q, want If", c.Name())
	}
	if c.Include() {
		t.Error("Include() = true after Excluded")
	}
	if c.Literal() != "if" {
		t.Errorf("Literal() = %q, want if", c.Literal())
	}

	r := Must(Range(c, 1, 4))
	if low, high := r.Bounds(); low != 1 || high != 4 {
		t.Errorf("Bounds() = %d, %d", low, high)
	}
	if got := Must(Repeat(c, 3)).Times(); got != 3 {
		t.Errorf("Times() = %d, want 3", got)
	}
	if got := Must(LessThan(c, 5)).Amount(); got != 5 {
		t.Errorf("Amount() = %d, want 5", got)
	}
}

func TestChainFlattening(t *testing.T) {
	a := Must(Char('a'))
	b := Must(Char('b'))
	c := Must(Char('c'))

	tests := []struct {
		name string
		comb *Combinator
		kind Kind
		want int
	}{
		{"and left", a.And(b).And(c), KindAnd, 3},
		{"and right", a.And(b.And(c)), KindAnd, 3},
		{"and both", a.And(b).And(c.And(a)), KindAnd, 4},
		{"or left", a.Or(b).Or(c), KindOr, 3},
		{"or right", a.Or(b.Or(c)), KindOr, 3},
		{"or of and", a.And(b).Or(c), KindOr, 2},
		{"and of or", a.Or(b).And(c), KindAnd, 2},
		{"named not spliced", Must(a.And(b).With(Named("ab"))).And(c), KindAnd, 2},
		{"wrapped not spliced", Must(a.And(b).Wrap()).And(c), KindAnd, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.comb.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.comb.Kind(), tt.kind)
			}
			if got := len(tt.comb.Operands()); got != tt.want {
				t.Errorf("len(Operands()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChainDoesNotMutateOperands(t *testing.T) {
	a := Must(Char('a'))
	b := Must(Char('b'))
	c := Must(Char('c'))

	ab := a.And(b)
	abc := ab.And(c)
	abd := ab.And(Must(Char('d')))

	if got := len(ab.Operands()); got != 2 {
		t.Errorf("ab has %d operands after chaining, want 2", got)
	}
	if abc.Operands()[2] != c {
		t.Error("abc lost its third operand")
	}
	if abd.Operands()[2].Literal() != "d" {
		t.Error("abd shares operands with abc")
	}
}

func TestWrap(t *testing.T) {
	a := Must(Char('a'))
	b := Must(Char('b'))
	ab := a.Or(b)

	w, err := ab.Wrap()
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if w == ab {
		t.Fatal("Wrap returned the same combinator")
	}
	if w.Kind() != KindOr {
		t.Errorf("Kind() = %v, want Or", w.Kind())
	}
	ops := w.Operands()
	if len(ops) != 1 || ops[0] != ab {
		t.Errorf("Operands() = %v, want [ab]", ops)
	}
}

func TestChainPanicsOnNil(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNilCombinator) {
			t.Errorf("panic value = %v, want ErrNilCombinator", r)
		}
	}()
	Must(Char('a')).And(nil)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPlaceholder, "Placeholder"},
		{KindChar, "Char"},
		{KindAnd, "And"},
		{KindOr, "Or"},
		{KindLessThan, "LessThan"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if !KindRange.IsRepetition() || KindOr.IsRepetition() {
		t.Error("IsRepetition mismatch")
	}
}

func TestWithCopies(t *testing.T) {
	lit := Must(Char('x', Named("X")))
	grammar := lit.And(Must(Char('y')))

	excluded := Must(lit.With(Excluded(), Named("Hidden")))
	if excluded == lit {
		t.Fatal("With returned the receiver")
	}
	if !lit.Include() || lit.Name() != "X" {
		t.Errorf("receiver changed: Include() = %v, Name() = %q", lit.Include(), lit.Name())
	}
	if excluded.Include() || excluded.Name() != "Hidden" {
		t.Errorf("copy: Include() = %v, Name() = %q", excluded.Include(), excluded.Name())
	}

	out := Run(grammar, "xy")
	if !out.OK() {
		t.Fatal(out.Failure)
	}
	if first := out.Node.Children()[0]; !first.Include || first.Name != "X" {
		t.Errorf("shared literal produced %s with Include = %v", first.Name, first.Include)
	}

	ab := Must(Char('a')).And(Must(Char('b')))
	named := Must(ab.With(Named("AB")))
	if ab.Name() != "Anonymous" {
		t.Errorf("chain renamed to %q", ab.Name())
	}
	if got := len(ab.And(Must(Char('c'))).Operands()); got != 3 {
		t.Errorf("unnamed chain no longer flattens: %d operands", got)
	}
	if got := len(named.And(Must(Char('c'))).Operands()); got != 2 {
		t.Errorf("named chain flattened: %d operands", got)
	}
}
