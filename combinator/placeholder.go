package combinator

// Placeholder returns an undefined combinator. It can be used as an
// operand right away and is bound to its definition later with Define,
// which is how self- and mutually-recursive grammars are written:
//
//	b := Must(Char('b'))
//	B := Placeholder()
//	S := Must(Char('a')).And(B)
//	err := B.Define(b.And(B).Or(b))
func Placeholder() *Combinator {
	return &Combinator{kind: KindPlaceholder, name: anonymous, include: true}
}

// IsPlaceholder reports whether c was created by Placeholder, defined or not.
func (c *Combinator) IsPlaceholder() bool {
	return c.kind == KindPlaceholder
}

// Defined reports whether c is usable for parsing: every combinator
// except an unbound placeholder.
func (c *Combinator) Defined() bool {
	return c.resolved().kind != KindPlaceholder
}

// Target returns the definition a placeholder is bound to, or nil.
func (c *Combinator) Target() *Combinator {
	return c.target
}

// Define binds the placeholder c to def. Every combinator that already
// holds c observes def when it is run. A placeholder can be defined once.
func (c *Combinator) Define(def *Combinator) error {
	switch {
	case c.kind != KindPlaceholder:
		return &ConstructionError{Op: "Define", Err: ErrNotPlaceholder}
	case c.target != nil:
		return &ConstructionError{Op: "Define", Err: ErrAlreadyDefined}
	case def == nil:
		return &ConstructionError{Op: "Define", Err: ErrNilCombinator}
	case def == c || def.resolved() == c:
		return &ConstructionError{Op: "Define", Err: ErrSelfReference}
	case !def.Defined():
		return &ConstructionError{Op: "Define", Err: ErrUndefined}
	}
	c.target = def
	return nil
}
