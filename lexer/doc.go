/*
Package lexer implements a prioritized pattern lexer.

Patterns are registered in priority buckets. When scanning, buckets are tried
from the highest priority downwards and, inside a bucket, in declaration order.
In MatchFastest mode the first matcher producing a non-empty match wins; in
MatchLongest mode every matcher is tried and the longest match wins, ties going
to the matcher found first. A table of literal keywords, compiled to a DFA, is
consulted only when no pattern matches; the longest literal wins.

Besides token patterns, a lexer knows up to three assists: a whitespace skipper,
a newline skipper that advances the row counter, and an error hook called
instead of failing when nothing matches.

	l := lexer.New("calc")
	l.AddPatterns(1, lexer.Pattern("num", `[0-9]+`))
	l.AddPatterns(0, lexer.SkipWhitespace(`[ \t]+`), lexer.SkipNewline(`\n+`))
	l.AddLiterals("+", "-", "**")
	s := l.Tokenize("1 + 2")
	for {
		tok, err := s.Next()
		if err == io.EOF {
			break
		}
		...
	}

The lexer traces to key "xparse.lexer".
*/
package lexer

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xparse.lexer")
}
