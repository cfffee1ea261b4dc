package automaton

// This file contains the Thompson combinators. All three are pure: they
// build and return a fresh automaton and never mutate their operands. Each
// operand's states are copied in under fresh contiguous ids, so the result
// always satisfies the renumbering invariant checked by Validate.

// appendRenumbered copies every state of src into dst under fresh ids
// allocated from *index, rewriting each edge's destination through the
// renumbering map. States are visited in sorted-id order so the assignment
// is deterministic. It returns the new id of src's initial state and the new
// ids of src's terminal states.
func appendRenumbered(dst *Automaton, src Automaton, index *int) (start int, terminals []int) {
	newKeys := map[int]int{}

	ordered := src.States()
	for _, id := range ordered {
		newKeys[id] = *index
		*index++
	}

	for _, id := range ordered {
		n := src.nodes[id]

		nn := Node{State: newKeys[id], Terminal: n.Terminal}
		for _, e := range n.Edges {
			nn.Edges = append(nn.Edges, Edge{Input: e.Input, Dest: newKeys[e.Dest]})
		}

		dst.nodes[nn.State] = nn

		if n.Terminal {
			terminals = append(terminals, nn.State)
		}
	}

	return newKeys[src.start], terminals
}

// Union returns the automaton accepting L(a) ∪ L(b). A fresh initial state
// is allocated after both copied operands, with lambda-edges to each
// operand's former initial state; the terminal flags of both operands are
// preserved.
func (a Automaton) Union(b Automaton) Automaton {
	result := New()
	index := 0

	aStart, _ := appendRenumbered(&result, a, &index)
	bStart, _ := appendRenumbered(&result, b, &index)

	s := index
	result.AddState(s)
	result.start = s
	result.AddTransition(s, Epsilon, aStart)
	result.AddTransition(s, Epsilon, bStart)

	return result
}

// Concat returns the automaton accepting L(a)L(b). The terminal flag is
// cleared on every former terminal of a, which instead gets a lambda-edge to
// b's former initial state; the result starts at a's former initial state
// and accepts at b's former terminals.
func (a Automaton) Concat(b Automaton) Automaton {
	result := New()
	index := 0

	aStart, aTerminals := appendRenumbered(&result, a, &index)
	bStart, _ := appendRenumbered(&result, b, &index)

	for _, t := range aTerminals {
		n := result.nodes[t]
		n.Terminal = false
		result.nodes[t] = n

		result.AddTransition(t, Epsilon, bStart)
	}

	result.start = aStart

	return result
}

// Star returns the automaton accepting L(a)*. A fresh state is allocated
// after the copied operand and becomes both the initial state and a terminal
// state (accepting the empty word), with a lambda-edge into a's former
// initial state; every former terminal of a keeps its flag and gets a
// lambda-edge back to the fresh state, closing the loop.
func (a Automaton) Star() Automaton {
	result := New()
	index := 0

	aStart, aTerminals := appendRenumbered(&result, a, &index)

	s := index
	result.AddState(s)
	result.MarkTerminal(s)
	result.start = s
	result.AddTransition(s, Epsilon, aStart)

	for _, t := range aTerminals {
		result.AddTransition(t, Epsilon, s)
	}

	return result
}
