package grammar

import "fmt"

// Version is an opaque dialect tag stamped onto derived grammars. The
// compiler attaches no meaning to it; consumers use it to select
// dialect-specific behavior.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

func (v Version) String() string {
	return fmt.Sprintf("%v.%v", v.Major, v.Minor)
}

type LabelKind string

const (
	// LabelKindToken labels a transition with a lexical category or an
	// operator token type.
	LabelKindToken = LabelKind("token")

	// LabelKindKeyword labels a transition with a reserved word. The token
	// type is always the NAME category; Text holds the word itself.
	LabelKindKeyword = LabelKind("keyword")

	// LabelKindNonTerminal labels a transition with another rule.
	LabelKindNonTerminal = LabelKind("non-terminal")
)

// Label is an interned transition key. Equal labels share one index in
// Grammar.Labels, so transition tables compare labels by index alone.
type Label struct {
	Kind  LabelKind `json:"kind"`
	Token int       `json:"token,omitempty"`
	Text  string    `json:"text,omitempty"`
	Sym   int       `json:"symbol,omitempty"`
}

// Arc is one deterministic transition: Label indexes Grammar.Labels and
// Next indexes the owning DFA's States.
type Arc struct {
	Label int `json:"label"`
	Next  int `json:"next"`
}

// State is a node of one rule's automaton. At most one arc exists per
// label. States never escape the DFA that owns them.
type State struct {
	Arcs   []Arc `json:"arcs"`
	Accept bool  `json:"accept"`
}

// DFA is the deterministic automaton compiled from one rule. A rule whose
// expression can match the empty sequence has an accepting start state.
type DFA struct {
	Rule   string  `json:"rule"`
	Sym    int     `json:"symbol"`
	Start  int     `json:"start"`
	States []State `json:"states"`

	// First holds the sorted label indices that may begin this rule.
	First []int `json:"first"`
}

// TokenTable fixes the token-type numbering a grammar is compiled against.
// Each dialect supplies its own table; the compiler itself is dialect-blind.
type TokenTable struct {
	// Categories maps lexical category names (NAME, NUMBER, ...) referenced
	// from grammar rules to token-type ids. The NAME category must exist:
	// keyword labels are NAME tokens narrowed to one spelling.
	Categories map[string]int

	// Operators maps operator literals to token-type ids. Distinct
	// spellings may share an id and then share one interned label.
	Operators map[string]int

	// NonTerminalBase is the first nonterminal id. Token-type ids occupy
	// the range below it.
	NonTerminalBase int
}

func (t *TokenTable) validate() error {
	if t == nil {
		return fmt.Errorf("a token table is required")
	}
	if _, ok := t.Categories["NAME"]; !ok {
		return fmt.Errorf("a token table must define the NAME category")
	}
	if t.NonTerminalBase <= 0 {
		return fmt.Errorf("the non-terminal base offset must be positive")
	}
	for name, id := range t.Categories {
		if id >= t.NonTerminalBase {
			return fmt.Errorf("token type %v (%v) collides with the non-terminal range", name, id)
		}
	}
	for text, id := range t.Operators {
		if id >= t.NonTerminalBase {
			return fmt.Errorf("operator %v (%v) collides with the non-terminal range", text, id)
		}
	}
	return nil
}

// Grammar is the assembled artifact. All fields are read-only to
// consumers once Build returns; the derivation methods in derive.go are
// the only sanctioned way to obtain a grammar with different keyword,
// soft-keyword, flag, or version state.
type Grammar struct {
	SymbolToNumber map[string]int `json:"symbol_to_number"`
	NumberToSymbol map[int]string `json:"number_to_symbol"`
	DFAs           map[int]*DFA   `json:"dfas"`
	Labels         []Label        `json:"labels"`

	// Keywords maps each reserved word to its label index.
	Keywords map[string]int `json:"keywords"`

	// SoftKeywords holds identifiers that are keywords only in specific
	// grammatical positions. Assembly leaves it empty; only derivation
	// populates it.
	SoftKeywords map[string]bool `json:"soft_keywords"`

	// TokenToLabel maps a token-type id to its label index.
	TokenToLabel map[int]int `json:"token_to_label"`

	StartSymbol int             `json:"start_symbol"`
	Flags       map[string]bool `json:"flags"`
	Version     Version         `json:"version"`
}

// HasKeyword reports whether name is a reserved word in this grammar.
func (g *Grammar) HasKeyword(name string) bool {
	_, ok := g.Keywords[name]
	return ok
}

// IsSoftKeyword reports whether name is contextually reserved.
func (g *Grammar) IsSoftKeyword(name string) bool {
	return g.SoftKeywords[name]
}

// Flag reports the state of a named feature flag. Unset flags are off.
func (g *Grammar) Flag(name string) bool {
	return g.Flags[name]
}
