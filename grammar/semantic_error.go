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
	semErrNoGrammarName       = newSemanticError("name is missing")
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedStartSym   = newSemanticError("the start symbol is not defined as a non-terminal")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateRule       = newSemanticError("a non-terminal is defined twice")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrReservedName        = newSemanticError("a reserved name cannot be declared")
	semErrEmptyAlternatives   = newSemanticError("a non-terminal needs at least one alternative")
	semErrMixedEpsilon        = newSemanticError("epsilon cannot be mixed with other symbols in an alternative")
	semErrTermCannotBeSkipped = newSemanticError("a terminal used in productions cannot be skipped")
	semErrSkipWithoutPattern  = newSemanticError("only a terminal having a pattern can be skipped")
	semErrEmptyName           = newSemanticError("a symbol name must not be empty")
)
