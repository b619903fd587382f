package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/pcomb/combinator"
)

type JSONEncoder struct {
	w   io.Writer
	out combinator.Outcome
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(out combinator.Outcome) error {
	e.out = out
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(outcomeToJSON(e.out), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonOutcome struct {
	OK    bool             `json:"ok"`
	Node  *combinator.Node `json:"node,omitempty"`
	Error *jsonFailure     `json:"error,omitempty"`
	End   jsonPosition     `json:"end"`
}

type jsonFailure struct {
	Name     string       `json:"name" yaml:"name"`
	Message  string       `json:"message" yaml:"message"`
	Position jsonPosition `json:"position" yaml:"position"`
	Deepest  *jsonFailure `json:"deepest,omitempty" yaml:"deepest,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func positionToJSON(p combinator.Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func failureToJSON(f *combinator.Failure) *jsonFailure {
	jf := &jsonFailure{
		Name:     f.Name,
		Message:  f.Message,
		Position: positionToJSON(f.Pos),
	}
	if d := f.Deepest(); d != f {
		jf.Deepest = &jsonFailure{
			Name:     d.Name,
			Message:  d.Message,
			Position: positionToJSON(d.Pos),
		}
	}
	return jf
}

func outcomeToJSON(out combinator.Outcome) *jsonOutcome {
	jo := &jsonOutcome{
		OK:   out.OK(),
		Node: out.Node,
		End:  positionToJSON(out.End),
	}
	if out.Failure != nil {
		jo.Error = failureToJSON(out.Failure)
	}
	return jo
}
