package grammar

// Copy returns a structurally independent grammar with identical content.
// Nothing is aliased: mutating a copy (or deriving from it) never touches
// the source. Deriving is O(grammar size), never O(recompilation).
func (g *Grammar) Copy() *Grammar {
	symbolToNumber := make(map[string]int, len(g.SymbolToNumber))
	for name, num := range g.SymbolToNumber {
		symbolToNumber[name] = num
	}
	numberToSymbol := make(map[int]string, len(g.NumberToSymbol))
	for num, name := range g.NumberToSymbol {
		numberToSymbol[num] = name
	}

	dfas := make(map[int]*DFA, len(g.DFAs))
	for sym, dfa := range g.DFAs {
		dfas[sym] = copyDFA(dfa)
	}

	labels := make([]Label, len(g.Labels))
	copy(labels, g.Labels)

	keywords := make(map[string]int, len(g.Keywords))
	for name, label := range g.Keywords {
		keywords[name] = label
	}
	softKeywords := make(map[string]bool, len(g.SoftKeywords))
	for name := range g.SoftKeywords {
		softKeywords[name] = true
	}
	tokenToLabel := make(map[int]int, len(g.TokenToLabel))
	for tok, label := range g.TokenToLabel {
		tokenToLabel[tok] = label
	}
	flags := make(map[string]bool, len(g.Flags))
	for name, enabled := range g.Flags {
		flags[name] = enabled
	}

	return &Grammar{
		SymbolToNumber: symbolToNumber,
		NumberToSymbol: numberToSymbol,
		DFAs:           dfas,
		Labels:         labels,
		Keywords:       keywords,
		SoftKeywords:   softKeywords,
		TokenToLabel:   tokenToLabel,
		StartSymbol:    g.StartSymbol,
		Flags:          flags,
		Version:        g.Version,
	}
}

func copyDFA(dfa *DFA) *DFA {
	states := make([]State, len(dfa.States))
	for i, st := range dfa.States {
		arcs := make([]Arc, len(st.Arcs))
		copy(arcs, st.Arcs)
		states[i] = State{
			Arcs:   arcs,
			Accept: st.Accept,
		}
	}
	first := make([]int, len(dfa.First))
	copy(first, dfa.First)
	return &DFA{
		Rule:   dfa.Rule,
		Sym:    dfa.Sym,
		Start:  dfa.Start,
		States: states,
		First:  first,
	}
}

// WithoutKeyword derives a grammar in which name is no longer a reserved
// word and is recognized as an ordinary NAME token. Removing an absent
// keyword is a no-op, not an error.
func (g *Grammar) WithoutKeyword(name string) *Grammar {
	derived := g.Copy()
	delete(derived.Keywords, name)
	return derived
}

// WithSoftKeywords derives a grammar whose soft-keyword set is exactly
// names: identifiers reserved only in specific grammatical positions.
func (g *Grammar) WithSoftKeywords(names []string) *Grammar {
	derived := g.Copy()
	derived.SoftKeywords = make(map[string]bool, len(names))
	for _, name := range names {
		derived.SoftKeywords[name] = true
	}
	return derived
}

// WithFeatureFlag derives a grammar with the named feature flag set.
func (g *Grammar) WithFeatureFlag(flag string, enabled bool) *Grammar {
	derived := g.Copy()
	derived.Flags[flag] = enabled
	return derived
}

// WithVersion derives a grammar stamped with the given version tag.
func (g *Grammar) WithVersion(v Version) *Grammar {
	derived := g.Copy()
	derived.Version = v
	return derived
}
