package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/pcomb/combinator"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(out combinator.Outcome) error
}

var encoders = map[string]func(w io.Writer, colored bool) Encoder{
	"json": func(w io.Writer, _ bool) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer, _ bool) Encoder { return NewYAMLEncoder(w) },
	"tree": func(w io.Writer, colored bool) Encoder { return NewTreeEncoder(w, colored) },
}

// New returns the encoder registered under name. Only the tree encoder
// uses colored.
func New(name string, w io.Writer, colored bool) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, Names())
	}
	return mk(w, colored), nil
}

func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
