// Package dialect compiles the embedded grammar descriptions and exposes
// the family of language variants derived from them. The statement grammar
// is compiled once; every variant is derived by copy-and-mutate, so loading
// the whole family costs one compilation per embedded file.
package dialect

import (
	_ "embed"
	"strings"

	"github.com/renfmt/pgen/grammar"
	"github.com/renfmt/pgen/grammar/symbol"
	"github.com/renfmt/pgen/spec"
)

//go:embed grammar.txt
var grammarText string

//go:embed pattern.txt
var patternText string

// FlagAsyncKeywords marks grammars whose tokenizer must treat async and
// await as reserved words rather than context-sensitive names.
const FlagAsyncKeywords = "async_keywords"

// Set holds every compiled variant of the embedded grammars. All variants
// share nonterminal numbering with Legacy, so one symbol table serves the
// whole statement-grammar family.
type Set struct {
	// Legacy is the 2.0 dialect: print and exec are hard keywords.
	Legacy *grammar.Grammar

	// NoPrint is Legacy with print demoted to an ordinary name.
	NoPrint *grammar.Grammar

	// NoPrintNoExec is the 3.0 dialect: neither print nor exec is reserved.
	NoPrintNoExec *grammar.Grammar

	// AsyncKeywords is the 3.7 dialect: async and await become real tokens.
	AsyncKeywords *grammar.Grammar

	// SoftKeywords is the 3.10 dialect: match and case are reserved in
	// position only.
	SoftKeywords *grammar.Grammar

	// Pattern describes tree matching patterns. It is independent of the
	// statement grammars and has its own symbol numbering.
	Pattern *grammar.Grammar

	Symbols        *symbol.Table
	PatternSymbols *symbol.Table
}

// Load compiles both embedded grammars and derives all variants. Each call
// returns an independently owned Set; mutating grammars obtained from one
// Load never affects another.
func Load() (*Set, error) {
	base, err := compile(grammarText)
	if err != nil {
		return nil, err
	}
	pattern, err := compile(patternText)
	if err != nil {
		return nil, err
	}

	legacy := base.WithVersion(grammar.Version{Major: 2})
	noPrint := legacy.WithoutKeyword("print")
	noPrintNoExec := legacy.WithoutKeyword("print").
		WithoutKeyword("exec").
		WithVersion(grammar.Version{Major: 3})
	asyncKeywords := noPrintNoExec.
		WithFeatureFlag(FlagAsyncKeywords, true).
		WithVersion(grammar.Version{Major: 3, Minor: 7})
	softKeywords := asyncKeywords.
		WithSoftKeywords([]string{"match", "case"}).
		WithVersion(grammar.Version{Major: 3, Minor: 10})

	return &Set{
		Legacy:         legacy,
		NoPrint:        noPrint,
		NoPrintNoExec:  noPrintNoExec,
		AsyncKeywords:  asyncKeywords,
		SoftKeywords:   softKeywords,
		Pattern:        pattern,
		Symbols:        symbol.NewTable(legacy),
		PatternSymbols: symbol.NewTable(pattern),
	}, nil
}

func compile(src string) (*grammar.Grammar, error) {
	root, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	b := grammar.Builder{
		Root:   root,
		Tokens: Tokens(),
	}
	return b.Build()
}
