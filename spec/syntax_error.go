package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidEscSeq = newSyntaxError("invalid escape sequence")
	synErrEmptyString   = newSyntaxError("a terminal string must not be empty")

	// syntax errors
	synErrNoTarget        = newSyntaxError("a rule group must start with a target")
	synErrNoAssigner      = newSyntaxError("'=' must follow the target")
	synErrUnexpectedToken = newSyntaxError("unexpected token")
	synErrUnexpectedEOF   = newSyntaxError("unexpected EOF; a rule group must be terminated by ';'")
)
