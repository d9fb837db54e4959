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
	synErrUnclosedString = newSyntaxError("unclosed string literal")
	synErrEmptyString    = newSyntaxError("a string literal must not be empty")

	// syntax errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrNoRules          = newSyntaxError("a grammar must define at least one rule")
	synErrNoRuleName       = newSyntaxError("a rule name is missing")
	synErrNoColon          = newSyntaxError("the colon must follow a rule name")
	synErrNoNewline        = newSyntaxError("a rule must end with a newline")
	synErrEmptyAlternative = newSyntaxError("an alternative must contain at least one item")
	synErrUnclosedGroup    = newSyntaxError("unclosed group")
	synErrUnclosedOption   = newSyntaxError("unclosed optional group")
)
