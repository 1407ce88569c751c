package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoRule         = newSemanticError("a grammar needs at least one rule")
	semErrUndefinedStart = newSemanticError("undefined start symbol")
	semErrReservedSymbol = newSemanticError("reserved symbols cannot appear in a grammar")
	semErrUnknownRule    = newSemanticError("unknown rule")
	semErrUndefinedSym   = newSemanticError("undefined symbol")
)
