package combinator

import (
	"errors"
	"unicode/utf8"
)

const anonymous = "Anonymous"

type Kind int

const (
	KindPlaceholder Kind = iota
	KindChar
	KindString
	KindAnd
	KindOr
	KindMany
	KindClosure
	KindRepeat
	KindRange
	KindMoreThan
	KindLessThan
)

var kindNames = map[Kind]string{
	KindPlaceholder: "Placeholder",
	KindChar:        "Char",
	KindString:      "String",
	KindAnd:         "And",
	KindOr:          "Or",
	KindMany:        "Many",
	KindClosure:     "Closure",
	KindRepeat:      "Repeat",
	KindRange:       "Range",
	KindMoreThan:    "MoreThan",
	KindLessThan:    "LessThan",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsRepetition reports whether k belongs to the repetition family.
func (k Kind) IsRepetition() bool {
	return k >= KindMany && k <= KindLessThan
}

var (
	ErrInvalidChar     = errors.New("expected a character")
	ErrEmptyString     = errors.New("expected a non-empty string")
	ErrNilCombinator   = errors.New("expected a combinator")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrInvalidTimes    = errors.New("times must be positive")
	ErrInvalidBounds   = errors.New("bounds must satisfy 0 <= low <= high")
	ErrInvalidAmount   = errors.New("amount out of range")
	ErrNotComposite    = errors.New("only sequence and choice combinators can be wrapped")
	ErrNotPlaceholder  = errors.New("only placeholders can be defined")
	ErrAlreadyDefined  = errors.New("placeholder is already defined")
	ErrUndefined       = errors.New("undefined placeholder")
	ErrSelfReference   = errors.New("placeholder cannot be defined as itself")
	ErrPlaceholderOpts = errors.New("placeholders take their options from their definition")
)

// ConstructionError reports an invalid argument to a combinator builder.
type ConstructionError struct {
	Op  string
	Err error
}

func (e *ConstructionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Transform post-processes the node produced by a successful match.
type Transform func(*Node) *Node

// Combinator is a parsing strategy. Combinators are built once and can be
// run against any number of inputs, including concurrently.
type Combinator struct {
	kind      Kind
	char      rune
	text      string
	operands  []*Combinator
	name      string
	include   bool
	transform Transform

	times  int
	low    int
	high   int
	amount int

	// target is the definition of a placeholder, set once by Define.
	target *Combinator
	// chained marks an unadorned result of And/Or, whose operands are
	// spliced into further chaining of the same kind.
	chained bool
}

type Option func(*Combinator) error

// Named sets the name used in nodes and failure messages.
func Named(name string) Option {
	return func(c *Combinator) error {
		if name == "" {
			return ErrEmptyName
		}
		c.name = name
		return nil
	}
}

// Excluded marks the produced nodes as not to be kept by Node.Prune.
func Excluded() Option {
	return Included(false)
}

func Included(include bool) Option {
	return func(c *Combinator) error {
		c.include = include
		return nil
	}
}

// Mapped installs a transform applied to every node the combinator
// produces. A nil transform is the identity.
func Mapped(fn Transform) Option {
	return func(c *Combinator) error {
		c.transform = fn
		return nil
	}
}

func build(op string, c *Combinator, opts []Option) (*Combinator, error) {
	c.name = anonymous
	c.include = true
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, &ConstructionError{Op: op, Err: err}
		}
	}
	return c, nil
}

// Must panics if err is non-nil. It is meant for grammars built in
// package-level variables.
func Must(c *Combinator, err error) *Combinator {
	if err != nil {
		panic(err)
	}
	return c
}

func Char(r rune, opts ...Option) (*Combinator, error) {
	if r < 0 || !utf8.ValidRune(r) {
		return nil, &ConstructionError{Op: "Char", Err: ErrInvalidChar}
	}
	return build("Char", &Combinator{kind: KindChar, char: r}, opts)
}

func String(s string, opts ...Option) (*Combinator, error) {
	if s == "" {
		return nil, &ConstructionError{Op: "String", Err: ErrEmptyString}
	}
	return build("String", &Combinator{kind: KindString, text: s}, opts)
}

func repetition(op string, kind Kind, p *Combinator, opts []Option) (*Combinator, error) {
	if p == nil {
		return nil, &ConstructionError{Op: op, Err: ErrNilCombinator}
	}
	return build(op, &Combinator{kind: kind, operands: []*Combinator{p}}, opts)
}

// Many matches p one or more times.
func Many(p *Combinator, opts ...Option) (*Combinator, error) {
	return repetition("Many", KindMany, p, opts)
}

// Closure matches p zero or more times. It never fails.
func Closure(p *Combinator, opts ...Option) (*Combinator, error) {
	return repetition("Closure", KindClosure, p, opts)
}

// Repeat matches when the greedy run of p has exactly times elements.
func Repeat(p *Combinator, times int, opts ...Option) (*Combinator, error) {
	if times <= 0 {
		return nil, &ConstructionError{Op: "Repeat", Err: ErrInvalidTimes}
	}
	c, err := repetition("Repeat", KindRepeat, p, opts)
	if err != nil {
		return nil, err
	}
	c.times = times
	return c, nil
}

// Range matches when the greedy run of p has between low and high
// elements inclusive. A low bound of zero accepts an empty run.
func Range(p *Combinator, low, high int, opts ...Option) (*Combinator, error) {
	if low < 0 || high < low {
		return nil, &ConstructionError{Op: "Range", Err: ErrInvalidBounds}
	}
	c, err := repetition("Range", KindRange, p, opts)
	if err != nil {
		return nil, err
	}
	c.low, c.high = low, high
	return c, nil
}

// MoreThan matches when the greedy run of p has more than amount elements.
func MoreThan(p *Combinator, amount int, opts ...Option) (*Combinator, error) {
	if amount < 0 {
		return nil, &ConstructionError{Op: "MoreThan", Err: ErrInvalidAmount}
	}
	c, err := repetition("MoreThan", KindMoreThan, p, opts)
	if err != nil {
		return nil, err
	}
	c.amount = amount
	return c, nil
}

// LessThan matches when the greedy run of p has fewer than amount elements.
func LessThan(p *Combinator, amount int, opts ...Option) (*Combinator, error) {
	if amount <= 0 {
		return nil, &ConstructionError{Op: "LessThan", Err: ErrInvalidAmount}
	}
	c, err := repetition("LessThan", KindLessThan, p, opts)
	if err != nil {
		return nil, err
	}
	c.amount = amount
	return c, nil
}

// And chains c and other into a sequence. Chaining never modifies c or
// other; unadorned sequences on either side are flattened, so
// a.And(b).And(c) and a.And(b.And(c)) are the same three-operand sequence.
// And panics if other is nil.
func (c *Combinator) And(other *Combinator) *Combinator {
	return chain(KindAnd, c, other)
}

// Or chains c and other into an ordered choice, flattened like And.
func (c *Combinator) Or(other *Combinator) *Combinator {
	return chain(KindOr, c, other)
}

func chain(kind Kind, left, right *Combinator) *Combinator {
	if left == nil || right == nil {
		panic(&ConstructionError{Op: kind.String(), Err: ErrNilCombinator})
	}
	var operands []*Combinator
	operands = appendChained(operands, kind, left)
	operands = appendChained(operands, kind, right)
	return &Combinator{
		kind:     kind,
		operands: operands,
		name:     anonymous,
		include:  true,
		chained:  true,
	}
}

func appendChained(operands []*Combinator, kind Kind, c *Combinator) []*Combinator {
	if c.chained && c.kind == kind {
		return append(operands, c.operands...)
	}
	return append(operands, c)
}

// With returns a copy of c with opts applied; c itself is unchanged, so
// grammars already holding c keep their behavior. It is meant for naming
// or transforming sequences and choices right after chaining. The copy is
// never flattened into later chains.
func (c *Combinator) With(opts ...Option) (*Combinator, error) {
	if c.kind == KindPlaceholder {
		return nil, &ConstructionError{Op: "With", Err: ErrPlaceholderOpts}
	}
	cp := *c
	cp.operands = append([]*Combinator(nil), c.operands...)
	for _, opt := range opts {
		if err := opt(&cp); err != nil {
			return nil, &ConstructionError{Op: "With", Err: err}
		}
	}
	cp.chained = false
	return &cp, nil
}

// Map returns a copy of c with fn as its transform.
// It panics when called on a placeholder.
func (c *Combinator) Map(fn Transform) *Combinator {
	return Must(c.With(Mapped(fn)))
}

// Wrap returns a new sequence or choice whose only operand is c. The
// result has an identity of its own and is never flattened.
func (c *Combinator) Wrap() (*Combinator, error) {
	kind := c.Kind()
	if kind != KindAnd && kind != KindOr {
		return nil, &ConstructionError{Op: "Wrap", Err: ErrNotComposite}
	}
	return &Combinator{
		kind:     kind,
		operands: []*Combinator{c},
		name:     anonymous,
		include:  c.Include(),
	}, nil
}

// resolved follows placeholder definitions. It returns c itself when c
// is an undefined placeholder.
func (c *Combinator) resolved() *Combinator {
	for c.kind == KindPlaceholder && c.target != nil {
		c = c.target
	}
	return c
}

func (c *Combinator) Name() string {
	return c.resolved().name
}

func (c *Combinator) Kind() Kind {
	return c.resolved().kind
}

func (c *Combinator) Include() bool {
	return c.resolved().include
}

// Operands returns the sub-combinators: the sequence or choice members,
// or the single repeated operand.
func (c *Combinator) Operands() []*Combinator {
	ops := c.resolved().operands
	out := make([]*Combinator, len(ops))
	copy(out, ops)
	return out
}

// Literal returns the text matched by Char and String combinators.
func (c *Combinator) Literal() string {
	r := c.resolved()
	switch r.kind {
	case KindChar:
		return string(r.char)
	case KindString:
		return r.text
	}
	return ""
}

// Times returns the count of a Repeat combinator.
func (c *Combinator) Times() int {
	return c.resolved().times
}

// Bounds returns the limits of a Range combinator.
func (c *Combinator) Bounds() (low, high int) {
	r := c.resolved()
	return r.low, r.high
}

// Amount returns the threshold of MoreThan and LessThan combinators.
func (c *Combinator) Amount() int {
	return c.resolved().amount
}
