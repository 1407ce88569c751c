package lexer

type LexError struct {
	message string
}

func newLexError(message string) *LexError {
	return &LexError{
		message: message,
	}
}

func (e *LexError) Error() string {
	return e.message
}

var (
	// ErrUnrecognizedSymbol is the cause of the error a stream returns when
	// neither a pattern nor a literal matches and no error hook is set.
	ErrUnrecognizedSymbol = newLexError("unrecognized symbol")

	errNoName          = newLexError("a token pattern needs a name")
	errNoMatcher       = newLexError("a pattern needs either a regular expression or a matcher")
	errInvalidPattern  = newLexError("invalid pattern")
	errDuplicateName   = newLexError("duplicate token name")
	errReservedName    = newLexError("the token name is reserved")
	errDuplicateAssist = newLexError("the assist is already set")
	errNoHook          = newLexError("an error hook needs a function")
	errUnknownRole     = newLexError("unknown role")
	errEmptyLiteral    = newLexError("a literal must not be empty")
)
