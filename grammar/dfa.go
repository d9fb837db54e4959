package grammar

import "sort"

// protoState is a DFA state before label interning. Its identity is the
// set of NFA states it stands for.
type protoState struct {
	nfaSet map[*nfaState]struct{}
	accept bool
	arcs   []protoArc
}

type protoArc struct {
	label *arcLabel
	next  *protoState
}

// buildDFA subset-constructs the NFA fragment between start and end into a
// deterministic automaton. Only reachable state sets are generated, and
// arcs are ordered by raw label for reproducible output.
func buildDFA(start, end *nfaState) []*protoState {
	startSet := map[*nfaState]struct{}{}
	epsilonClosure(startSet, start)

	states := []*protoState{
		{
			nfaSet: startSet,
			accept: containsNFAState(startSet, end),
		},
	}
	for i := 0; i < len(states); i++ {
		st := states[i]

		targets := map[string]map[*nfaState]struct{}{}
		labels := map[string]*arcLabel{}
		for ns := range st.nfaSet {
			for _, arc := range ns.arcs {
				if arc.label == nil {
					continue
				}
				k := arc.label.key()
				set, ok := targets[k]
				if !ok {
					set = map[*nfaState]struct{}{}
					targets[k] = set
					labels[k] = arc.label
				}
				epsilonClosure(set, arc.next)
			}
		}

		keys := make([]string, 0, len(targets))
		for k := range targets {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			set := targets[k]
			next := findProtoState(states, set)
			if next == nil {
				next = &protoState{
					nfaSet: set,
					accept: containsNFAState(set, end),
				}
				states = append(states, next)
			}
			st.arcs = append(st.arcs, protoArc{
				label: labels[k],
				next:  next,
			})
		}
	}
	return states
}

// simplifyDFA merges states with identical accepting status and identical
// outgoing arc signatures until a fixed point. The start state stays at
// index 0.
func simplifyDFA(states []*protoState) []*protoState {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(states); i++ {
			for j := i + 1; j < len(states); j++ {
				if !sameProtoState(states[i], states[j]) {
					continue
				}
				dropped := states[j]
				states = append(states[:j], states[j+1:]...)
				for _, st := range states {
					for k := range st.arcs {
						if st.arcs[k].next == dropped {
							st.arcs[k].next = states[i]
						}
					}
				}
				changed = true
				j--
			}
		}
	}
	return states
}

func epsilonClosure(set map[*nfaState]struct{}, s *nfaState) {
	if _, ok := set[s]; ok {
		return
	}
	set[s] = struct{}{}
	for _, arc := range s.arcs {
		if arc.label == nil {
			epsilonClosure(set, arc.next)
		}
	}
}

func containsNFAState(set map[*nfaState]struct{}, s *nfaState) bool {
	_, ok := set[s]
	return ok
}

func findProtoState(states []*protoState, set map[*nfaState]struct{}) *protoState {
	for _, st := range states {
		if equalNFASets(st.nfaSet, set) {
			return st
		}
	}
	return nil
}

func equalNFASets(a, b map[*nfaState]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if _, ok := b[s]; !ok {
			return false
		}
	}
	return true
}

func sameProtoState(a, b *protoState) bool {
	if a.accept != b.accept || len(a.arcs) != len(b.arcs) {
		return false
	}
	for i, arc := range a.arcs {
		other := b.arcs[i]
		if arc.label.key() != other.label.key() || arc.next != other.next {
			return false
		}
	}
	return true
}
