// Package symbol projects a grammar's nonterminal numbering as a typed,
// read-only lookup surface. Nonterminal ids are only meaningful relative
// to the grammar that assigned them, so a table must be rebuilt for every
// newly assembled grammar value; Version lets consumers verify provenance.
package symbol

import (
	"sort"

	"github.com/renfmt/pgen/grammar"
)

type Table struct {
	names   map[string]int
	ids     map[int]string
	version grammar.Version
}

// NewTable snapshots the symbol numbering of g. The table stays valid
// even if g is discarded.
func NewTable(g *grammar.Grammar) *Table {
	names := make(map[string]int, len(g.SymbolToNumber))
	ids := make(map[int]string, len(g.SymbolToNumber))
	for name, id := range g.SymbolToNumber {
		names[name] = id
		ids[id] = name
	}
	return &Table{
		names:   names,
		ids:     ids,
		version: g.Version,
	}
}

// Lookup returns the nonterminal id for name. A miss is ordinary control
// flow: callers routinely probe for optional grammar features.
func (t *Table) Lookup(name string) (int, bool) {
	id, ok := t.names[name]
	return id, ok
}

// NameOf returns the rule name a nonterminal id was assigned to.
func (t *Table) NameOf(id int) (string, bool) {
	name, ok := t.ids[id]
	return name, ok
}

// Names returns every nonterminal name in lexical order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.names))
	for name := range t.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of nonterminals the table covers.
func (t *Table) Len() int {
	return len(t.names)
}

// Version returns the version tag of the grammar the table was built from.
func (t *Table) Version() grammar.Version {
	return t.version
}
