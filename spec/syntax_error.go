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
	synErrInvalidToken = newSyntaxError("invalid token")
	synErrEmptyPattern = newSyntaxError("a pattern must include at least one character")

	// syntax errors
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoColon          = newSyntaxError("the colon must precede alternatives")
	synErrNoSemicolon      = newSyntaxError("the semicolon is missing at the last of an alternative")
	synErrNoDirectiveName  = newSyntaxError("a directive needs a name")
	synErrDirNoSemicolon   = newSyntaxError("the semicolon is missing at the last of a directive")

	// errors found while converting a syntax tree into a definition
	synErrDirInvalidName  = newSyntaxError("invalid directive name")
	synErrDirInvalidParam = newSyntaxError("invalid parameter")
	synErrDuplicateDir    = newSyntaxError("a directive cannot be specified twice")
	synErrPatternInRule   = newSyntaxError("a pattern must be the only element of a terminal production")
)
