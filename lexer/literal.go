package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// escapeLiteral turns a literal into a lexmachine pattern matching exactly
// the literal. Every ASCII punctuation character is escaped.
func escapeLiteral(lit string) string {
	var b strings.Builder
	for _, c := range lit {
		if c < utf8.RuneSelf && (unicode.IsPunct(c) || unicode.IsSymbol(c)) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// literalTable matches keyword literals. All literals are compiled into a
// single DFA, so the longest literal wins and literals of the same length go
// to the one declared first.
type literalTable struct {
	literals []string
	lex      *lexmachine.Lexer

	// maxLen is the byte length of the longest literal. No literal can match
	// beyond it, so only that prefix of the input is scanned.
	maxLen int
}

func newLiteralTable(literals []string) (*literalTable, error) {
	lex := lexmachine.NewLexer()
	maxLen := 0
	for i, lit := range literals {
		lex.Add([]byte(escapeLiteral(lit)), literalAction(i))
		if len(lit) > maxLen {
			maxLen = len(lit)
		}
	}
	if err := lex.Compile(); err != nil {
		return nil, err
	}
	return &literalTable{
		literals: literals,
		lex:      lex,
		maxLen:   maxLen,
	}, nil
}

func literalAction(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func (t *literalTable) match(input string) (string, bool) {
	if t == nil || input == "" {
		return "", false
	}
	if len(input) > t.maxLen {
		input = input[:t.maxLen]
	}
	scan, err := t.lex.Scanner([]byte(input))
	if err != nil {
		return "", false
	}
	tok, err, eos := scan.Next()
	if err != nil || eos {
		return "", false
	}
	lt, ok := tok.(*lexmachine.Token)
	if !ok || lt.TC != 0 || len(lt.Lexeme) == 0 {
		return "", false
	}
	return string(lt.Lexeme), true
}

// literalKind is the kind of a token produced by a literal. Literals are
// their own kind, quoted.
func literalKind(lit string) string {
	return `"` + lit + `"`
}
