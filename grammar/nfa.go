package grammar

import (
	"fmt"

	"github.com/renfmt/pgen/spec"
)

// arcLabel is a transition key before interning: a quoted literal or a
// name that later resolves to a rule or a token category.
type arcLabel struct {
	literal bool
	soft    bool
	text    string
}

// key renders the label the way it was spelled in the grammar source.
// Quote style is part of the key: a soft literal and a hard literal of the
// same word are distinct raw labels even though they intern identically.
func (l *arcLabel) key() string {
	switch {
	case !l.literal:
		return l.text
	case l.soft:
		return `"` + l.text + `"`
	default:
		return `'` + l.text + `'`
	}
}

type nfaState struct {
	arcs []nfaArc
}

// nfaArc carries a nil label for an epsilon transition.
type nfaArc struct {
	label *arcLabel
	next  *nfaState
}

func (s *nfaState) addArc(label *arcLabel, next *nfaState) {
	s.arcs = append(s.arcs, nfaArc{
		label: label,
		next:  next,
	})
}

// buildNFA converts one rule's expression tree into an NFA fragment and
// returns its entry and accept states.
func buildNFA(expr spec.ExprNode) (*nfaState, *nfaState) {
	switch n := expr.(type) {
	case *spec.LiteralNode:
		a := &nfaState{}
		z := &nfaState{}
		a.addArc(&arcLabel{literal: true, soft: n.Soft, text: n.Text}, z)
		return a, z
	case *spec.ReferenceNode:
		a := &nfaState{}
		z := &nfaState{}
		a.addArc(&arcLabel{text: n.Name}, z)
		return a, z
	case *spec.SequenceNode:
		start, end := buildNFA(n.Elems[0])
		for _, elem := range n.Elems[1:] {
			a, z := buildNFA(elem)
			end.addArc(nil, a)
			end = z
		}
		return start, end
	case *spec.AlternationNode:
		a := &nfaState{}
		z := &nfaState{}
		for _, alt := range n.Alts {
			s, e := buildNFA(alt)
			a.addArc(nil, s)
			e.addArc(nil, z)
		}
		return a, z
	case *spec.OptionNode:
		a, z := buildNFA(n.Expr)
		a.addArc(nil, z)
		return a, z
	case *spec.RepeatNode:
		a, z := buildNFA(n.Expr)
		z.addArc(nil, a)
		if n.Min == 0 {
			// Zero repetitions are accepted at the entry state itself.
			return a, a
		}
		return a, z
	default:
		panic(fmt.Sprintf("unknown expression node: %T", expr))
	}
}
