package spec

import (
	"github.com/nihei9/xparse/lexer"
)

// Token kinds of the grammar description language.
const (
	tokenKindID        = "id"
	tokenKindString    = "string"
	tokenKindSymbol    = "symbol"
	tokenKindAssigner  = "assigner"
	tokenKindOr        = "or"
	tokenKindSemicolon = "semicolon"
)

// NewLexer returns the lexer of the grammar description language.
//
//	// comments run to the end of the line
//	Expr = Expr "+" Term | Term ;
//	Term = ( Expr ) | id ;
//
// Identifiers name symbols. A double-quoted string names a terminal; inside
// it, \" and \\ are the only escape sequences. Runs of operator characters
// (except '/') are symbols too, so `Expr + Term` needs no quotes. Brackets
// always stand alone, so `((E))` is five symbols, but other adjacent
// operators form one symbol: write `+ -` rather than `+-` for two.
func NewLexer() (*lexer.Lexer, error) {
	punct, err := lexer.NewDFAMatcher("xnf",
		lexer.DFAEntry{Kind: tokenKindAssigner, Pattern: lexer.EscapeDFAPattern("=")},
		lexer.DFAEntry{Kind: tokenKindOr, Pattern: lexer.EscapeDFAPattern("|")},
		lexer.DFAEntry{Kind: tokenKindSemicolon, Pattern: lexer.EscapeDFAPattern(";")},
	)
	if err != nil {
		return nil, err
	}

	l := lexer.New("xnf")
	err = l.AddPatterns(2,
		lexer.Pattern(tokenKindID, `[a-zA-Z][a-zA-Z0-9_]*`),
		lexer.Pattern(tokenKindString, `"(?:\\.|[^"\\\n])*"`),
	)
	if err != nil {
		return nil, err
	}
	err = l.AddPatterns(1,
		lexer.Custom("punctuation", punct),
	)
	if err != nil {
		return nil, err
	}
	err = l.AddPatterns(0,
		lexer.Pattern(tokenKindSymbol, `[()\[\]{}]|[+\-*%^&!?:,.<>@~$#]+`),
		lexer.SkipWhitespace(`(?:[ \t\r\f]|//[^\n]*)+`),
		lexer.SkipNewline(`\n+`),
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}
