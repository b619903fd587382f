package combinator

import "fmt"

// Failure describes why a combinator did not match. Message embeds the
// combinator name and the 1-based line:column, and nested failures
// embed the inner message in parentheses.
type Failure struct {
	Name    string
	Pos     Position
	Message string
	Cause   *Failure
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	if f.Cause == nil {
		return nil
	}
	return f.Cause
}

// Deepest returns the innermost failure in the cause chain.
func (f *Failure) Deepest() *Failure {
	for f.Cause != nil {
		f = f.Cause
	}
	return f
}

func failf(name string, pos Position, format string, args ...any) *Failure {
	return &Failure{
		Name:    name,
		Pos:     pos,
		Message: fmt.Sprintf("%s Parsing Error: %s (%s)", name, fmt.Sprintf(format, args...), pos),
	}
}

// Outcome is the result of one parse attempt. Exactly one of Node and
// Failure is set. Include is copied from the combinator that produced it.
type Outcome struct {
	Include bool
	Node    *Node
	Failure *Failure
	// End is the committed cursor position after the attempt; on failure
	// it is the position the attempt started from.
	End Position
}

func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

func (o Outcome) String() string {
	if o.Failure != nil {
		return "Error: " + o.Failure.Message
	}
	return "Success: " + o.Node.String()
}
