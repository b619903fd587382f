package grammars

import "github.com/dhamidi/pcomb/combinator"

// Config = { Entry }, Entry = Key "=" Value ";"
//
// Keys are 1 to 32 identifier characters, values fewer than 65 value
// characters. Whitespace between characters is skipped like everywhere
// else, so the semicolon ends an entry.
func init() {
	keyChar := oneOf(letters+digits+"_", combinator.Named("KeyChar"))
	valueChar := oneOf(letters+digits+"_.-/:", combinator.Named("ValueChar"))

	key := combinator.Must(combinator.Range(keyChar, 1, 32, combinator.Named("Key")))
	value := combinator.Must(combinator.LessThan(valueChar, 65, combinator.Named("Value")))
	entry := combinator.Must(key.And(punct('=')).And(value).And(punct(';')).With(combinator.Named("Entry")))

	register(&Grammar{
		Name:        "kv",
		Description: "key = value; entries with bounded key and value lengths",
		Root:        combinator.Must(combinator.Closure(entry, combinator.Named("Config"))),
	})
}
