package automaton

import (
	"fmt"
	"io"
)

// Load reads an automaton from its whitespace-separated text format:
//
//	N                  number of states
//	s_1 ... s_N        state ids
//	M                  number of transitions
//	src dst c          one per transition; c is a single char, '-' = lambda
//	init               initial state id
//	K                  number of terminal states
//	t_1 ... t_K        terminal state ids
//
// Tokens may be separated by any whitespace, including newlines. Load reads
// exactly the tokens above and leaves anything after them unconsumed, so a
// caller may continue reading trailing data from the same reader.
func Load(r io.Reader) (Automaton, error) {
	a := New()

	var numStates int
	if _, err := fmt.Fscan(r, &numStates); err != nil {
		return Automaton{}, fmt.Errorf("read state count: %w", err)
	}
	for i := 0; i < numStates; i++ {
		var state int
		if _, err := fmt.Fscan(r, &state); err != nil {
			return Automaton{}, fmt.Errorf("read state %d of %d: %w", i+1, numStates, err)
		}
		a.AddState(state)
	}

	var numTrans int
	if _, err := fmt.Fscan(r, &numTrans); err != nil {
		return Automaton{}, fmt.Errorf("read transition count: %w", err)
	}
	for i := 0; i < numTrans; i++ {
		var src, dst int
		var ch string
		if _, err := fmt.Fscan(r, &src, &dst, &ch); err != nil {
			return Automaton{}, fmt.Errorf("read transition %d of %d: %w", i+1, numTrans, err)
		}
		if len(ch) != 1 {
			return Automaton{}, fmt.Errorf("transition %d of %d: %q is not a single character", i+1, numTrans, ch)
		}
		if _, ok := a.nodes[src]; !ok {
			return Automaton{}, fmt.Errorf("transition %d of %d: source state %d not declared", i+1, numTrans, src)
		}
		if _, ok := a.nodes[dst]; !ok {
			return Automaton{}, fmt.Errorf("transition %d of %d: destination state %d not declared", i+1, numTrans, dst)
		}
		a.AddTransition(src, ch[0], dst)
	}

	var init int
	if _, err := fmt.Fscan(r, &init); err != nil {
		return Automaton{}, fmt.Errorf("read initial state: %w", err)
	}
	if _, ok := a.nodes[init]; !ok {
		return Automaton{}, fmt.Errorf("initial state %d not declared", init)
	}
	a.start = init

	var numTerm int
	if _, err := fmt.Fscan(r, &numTerm); err != nil {
		return Automaton{}, fmt.Errorf("read terminal count: %w", err)
	}
	for i := 0; i < numTerm; i++ {
		var state int
		if _, err := fmt.Fscan(r, &state); err != nil {
			return Automaton{}, fmt.Errorf("read terminal state %d of %d: %w", i+1, numTerm, err)
		}
		if _, ok := a.nodes[state]; !ok {
			return Automaton{}, fmt.Errorf("terminal state %d not declared", state)
		}
		a.MarkTerminal(state)
	}

	return a, nil
}
