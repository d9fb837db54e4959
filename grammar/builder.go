package grammar

import (
	"fmt"
	"sort"

	verr "github.com/renfmt/pgen/error"
	"github.com/renfmt/pgen/spec"
)

// Builder assembles one immutable Grammar from parsed rule trees and a
// token table.
type Builder struct {
	Root   *spec.RootNode
	Tokens *TokenTable

	errs verr.SpecErrors
}

type ruleAutomaton struct {
	name   string
	sym    int
	pos    spec.Position
	states []*protoState
}

// Build compiles every rule into a minimal DFA, interns all transition
// labels, assigns nonterminal numbers in first-definition order, and
// assembles the Grammar. Construction errors never yield a partial
// grammar.
func (b *Builder) Build() (*Grammar, error) {
	if b.Root == nil || len(b.Root.Rules) == 0 {
		return nil, fmt.Errorf("a grammar must define at least one rule")
	}
	if err := b.Tokens.validate(); err != nil {
		return nil, err
	}

	symbolToNumber := map[string]int{}
	numberToSymbol := map[int]string{}
	var autos []*ruleAutomaton
	autoByName := map[string]*ruleAutomaton{}
	for _, rule := range b.Root.Rules {
		if _, ok := symbolToNumber[rule.LHS]; ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause: &DuplicateRuleError{Rule: rule.LHS},
				Row:   rule.Pos.Row,
				Col:   rule.Pos.Col,
			})
			continue
		}
		num := b.Tokens.NonTerminalBase + len(autos)
		symbolToNumber[rule.LHS] = num
		numberToSymbol[num] = rule.LHS
		a := &ruleAutomaton{
			name: rule.LHS,
			sym:  num,
			pos:  rule.Pos,
		}
		autos = append(autos, a)
		autoByName[rule.LHS] = a
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	for i, rule := range b.Root.Rules {
		start, end := buildNFA(rule.RHS)
		autos[i].states = simplifyDFA(buildDFA(start, end))
	}

	in := newInterner(b.Tokens, symbolToNumber)
	for _, a := range autos {
		for _, st := range a.states {
			for _, arc := range st.arcs {
				if _, err := in.intern(a.name, arc.label); err != nil {
					b.errs = append(b.errs, &verr.SpecError{
						Cause: err,
						Row:   a.pos.Row,
						Col:   a.pos.Col,
					})
				}
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	fc := newFirstCalc(autoByName)
	for _, a := range autos {
		if _, err := fc.calc(a.name); err != nil {
			// The error may concern a rule reached through references, not
			// the one the iteration started from.
			pos := a.pos
			if ra, ok := autoByName[semanticErrorRule(err)]; ok {
				pos = ra.pos
			}
			return nil, verr.SpecErrors{
				{
					Cause: err,
					Row:   pos.Row,
					Col:   pos.Col,
				},
			}
		}
	}

	dfas := map[int]*DFA{}
	for _, a := range autos {
		dfas[a.sym] = assembleDFA(a, in, fc.first[a.name])
	}

	return &Grammar{
		SymbolToNumber: symbolToNumber,
		NumberToSymbol: numberToSymbol,
		DFAs:           dfas,
		Labels:         in.labels,
		Keywords:       in.keywords,
		SoftKeywords:   map[string]bool{},
		TokenToLabel:   in.tokenToLabel,
		StartSymbol:    symbolToNumber[b.Root.Start],
		Flags:          map[string]bool{},
	}, nil
}

// interner assigns stable indices to distinct labels. Two operator
// spellings that share a token type share one label, exactly as two
// references to the same rule do.
type interner struct {
	tokens         *TokenTable
	symbolToNumber map[string]int

	labels       []Label
	index        map[string]int
	rawIndex     map[string]int
	keywords     map[string]int
	tokenToLabel map[int]int
}

func newInterner(tokens *TokenTable, symbolToNumber map[string]int) *interner {
	return &interner{
		tokens:         tokens,
		symbolToNumber: symbolToNumber,
		index:          map[string]int{},
		rawIndex:       map[string]int{},
		keywords:       map[string]int{},
		tokenToLabel:   map[int]int{},
	}
}

func (in *interner) intern(rule string, raw *arcLabel) (int, error) {
	label, err := in.resolve(rule, raw)
	if err != nil {
		return 0, err
	}

	key := labelKey(label)
	i, ok := in.index[key]
	if !ok {
		i = len(in.labels)
		in.labels = append(in.labels, label)
		in.index[key] = i
		if label.Kind == LabelKindToken {
			in.tokenToLabel[label.Token] = i
		}
	}
	if label.Kind == LabelKindKeyword && !raw.soft {
		in.keywords[label.Text] = i
	}
	in.rawIndex[raw.key()] = i
	return i, nil
}

func (in *interner) resolve(rule string, raw *arcLabel) (Label, error) {
	if raw.literal {
		if isNameLiteral(raw.text) {
			return Label{
				Kind:  LabelKindKeyword,
				Token: in.tokens.Categories["NAME"],
				Text:  raw.text,
			}, nil
		}
		id, ok := in.tokens.Operators[raw.text]
		if !ok {
			return Label{}, &UnknownOperatorError{
				Rule:    rule,
				Literal: raw.text,
			}
		}
		return Label{
			Kind:  LabelKindToken,
			Token: id,
		}, nil
	}

	if sym, ok := in.symbolToNumber[raw.text]; ok {
		return Label{
			Kind: LabelKindNonTerminal,
			Sym:  sym,
			Text: raw.text,
		}, nil
	}
	if id, ok := in.tokens.Categories[raw.text]; ok {
		return Label{
			Kind:  LabelKindToken,
			Token: id,
		}, nil
	}
	return Label{}, &UndefinedRuleError{
		Rule:    rule,
		Missing: raw.text,
	}
}

func labelKey(l Label) string {
	switch l.Kind {
	case LabelKindKeyword:
		return fmt.Sprintf("k:%v", l.Text)
	case LabelKindNonTerminal:
		return fmt.Sprintf("n:%v", l.Sym)
	default:
		return fmt.Sprintf("t:%v", l.Token)
	}
}

func isNameLiteral(text string) bool {
	c := text[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// firstCalc computes the set of raw labels that may begin each rule and
// rejects rules that are not deterministic under one-token lookahead.
// Overlap is checked on raw labels rather than interned indices so that
// two operator spellings sharing a token type do not collide.
type firstCalc struct {
	autos map[string]*ruleAutomaton
	first map[string]map[string]bool
}

func newFirstCalc(autos map[string]*ruleAutomaton) *firstCalc {
	return &firstCalc{
		autos: autos,
		first: map[string]map[string]bool{},
	}
}

func (f *firstCalc) calc(name string) (map[string]bool, error) {
	if set, ok := f.first[name]; ok {
		if set == nil {
			return nil, &LeftRecursionError{Rule: name}
		}
		return set, nil
	}
	f.first[name] = nil

	a := f.autos[name]
	start := a.states[0]
	total := map[string]bool{}
	contribs := map[string]map[string]bool{}
	for _, arc := range start.arcs {
		k := arc.label.key()
		if !arc.label.literal {
			if _, isRule := f.autos[arc.label.text]; isRule {
				sub, err := f.calc(arc.label.text)
				if err != nil {
					return nil, err
				}
				for sym := range sub {
					total[sym] = true
				}
				contribs[k] = sub
				continue
			}
		}
		total[k] = true
		contribs[k] = map[string]bool{k: true}
	}

	inverse := map[string]string{}
	for _, arc := range start.arcs {
		k := arc.label.key()
		syms := make([]string, 0, len(contribs[k]))
		for sym := range contribs[k] {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			if prev, ok := inverse[sym]; ok {
				return nil, &ConflictError{
					Rule:   name,
					Label:  sym,
					First:  prev,
					Second: k,
				}
			}
			inverse[sym] = k
		}
	}

	f.first[name] = total
	return total, nil
}

func assembleDFA(a *ruleAutomaton, in *interner, firstRaw map[string]bool) *DFA {
	index := map[*protoState]int{}
	for i, st := range a.states {
		index[st] = i
	}

	states := make([]State, len(a.states))
	for i, st := range a.states {
		arcs := make([]Arc, 0, len(st.arcs))
		for _, arc := range st.arcs {
			arcs = append(arcs, Arc{
				Label: in.rawIndex[arc.label.key()],
				Next:  index[arc.next],
			})
		}
		states[i] = State{
			Arcs:   arcs,
			Accept: st.accept,
		}
	}

	firstSet := map[int]struct{}{}
	for raw := range firstRaw {
		firstSet[in.rawIndex[raw]] = struct{}{}
	}
	first := make([]int, 0, len(firstSet))
	for i := range firstSet {
		first = append(first, i)
	}
	sort.Ints(first)

	return &DFA{
		Rule:   a.name,
		Sym:    a.sym,
		Start:  0,
		States: states,
		First:  first,
	}
}
