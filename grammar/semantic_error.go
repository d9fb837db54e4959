package grammar

import "fmt"

// DuplicateRuleError reports a rule name defined more than once.
type DuplicateRuleError struct {
	Rule string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %v is defined more than once", e.Rule)
}

// UndefinedRuleError reports a reference to a name that is neither a rule
// nor a token category.
type UndefinedRuleError struct {
	Rule    string
	Missing string
}

func (e *UndefinedRuleError) Error() string {
	return fmt.Sprintf("rule %v references undefined name %v", e.Rule, e.Missing)
}

// ConflictError reports a rule that is not deterministic under one-token
// lookahead: two arcs out of the rule's start state can both begin with
// Label.
type ConflictError struct {
	Rule  string
	Label string

	// First and Second are the two start-state arcs whose first sets
	// overlap on Label.
	First  string
	Second string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("rule %v is ambiguous: %v is in the first sets of %v as well as %v", e.Rule, e.Label, e.First, e.Second)
}

// LeftRecursionError reports a rule whose first set depends on itself.
type LeftRecursionError struct {
	Rule string
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("rule %v is left-recursive", e.Rule)
}

// UnknownOperatorError reports an operator literal that has no token type
// in the token table the grammar was compiled against.
type UnknownOperatorError struct {
	Rule    string
	Literal string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("rule %v uses operator %#v, which has no token type", e.Rule, e.Literal)
}

// semanticErrorRule returns the name of the rule a semantic error concerns,
// or "" for other errors.
func semanticErrorRule(err error) string {
	switch e := err.(type) {
	case *ConflictError:
		return e.Rule
	case *LeftRecursionError:
		return e.Rule
	default:
		return ""
	}
}
