package automaton

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tiberiu1204/regex-lfa/internal/util"
)

// ErrHasLambda is returned by ToDFA when the automaton it is called on
// contains lambda-transitions. Subset construction here requires a
// lambda-free NFA.
var ErrHasLambda = errors.New("automaton contains lambda-transitions")

// subsetKey produces the canonical string form of a state set: ids sorted
// ascending. Two sets are equal iff their keys are equal, regardless of the
// order states were added in.
func subsetKey(set util.KeySet[int]) string {
	ids := util.OrderedKeys(set)

	strs := make([]string, len(ids))
	for i := range ids {
		strs[i] = fmt.Sprintf("%d", ids[i])
	}

	return "{" + strings.Join(strs, ", ") + "}"
}

// transitionChars returns the set of input characters on some edge out of
// some state in the set, sorted ascending. Returns ErrHasLambda if any such
// edge is a lambda-edge.
func (a Automaton) transitionChars(set util.KeySet[int]) ([]byte, error) {
	chars := util.NewKeySet[byte]()

	for _, id := range util.OrderedKeys(set) {
		n := a.nodes[id]
		for _, e := range n.Edges {
			if e.Input == Epsilon {
				return nil, ErrHasLambda
			}
			chars.Add(e.Input)
		}
	}

	ordered := chars.Elements()
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i] < ordered[j]
	})

	return ordered, nil
}

// move returns the set of states reachable with one transition on input ch
// from some state in the set. Returns ErrHasLambda if a lambda-edge is
// encountered.
func (a Automaton) move(set util.KeySet[int], ch byte) (util.KeySet[int], error) {
	next := util.NewKeySet[int]()

	for id := range set {
		n := a.nodes[id]
		for _, e := range n.Edges {
			if e.Input == ch {
				next.Add(e.Dest)
			} else if e.Input == Epsilon {
				return nil, ErrHasLambda
			}
		}
	}

	return next, nil
}

// anyTerminal returns whether any state in the set is terminal.
func (a Automaton) anyTerminal(set util.KeySet[int]) bool {
	return set.Any(func(id int) bool {
		return a.nodes[id].Terminal
	})
}

// ToDFA converts a lambda-free NFA into a deterministic finite automaton
// accepting the same strings, via subset construction: each DFA state stands
// for the set of NFA states the input so far could have reached. Returns
// ErrHasLambda if a lambda-transition is encountered during conversion.
//
// Subsets are compared by value, so the order in which states were inserted
// never produces distinct DFA states for the same subset. The worst case is
// exponential in the number of NFA states; nothing here caps it.
func (a Automaton) ToDFA() (Automaton, error) {
	result := New()
	result.AddState(0)
	result.start = 0

	startSet := util.KeySetOf([]int{a.start})
	if a.anyTerminal(startSet) {
		result.MarkTerminal(0)
	}

	type entry struct {
		set util.KeySet[int]
		id  int
	}

	queue := []entry{{set: startSet, id: 0}}
	subsetIDs := map[string]int{subsetKey(startSet): 0}
	nextID := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		chars, err := a.transitionChars(cur.set)
		if err != nil {
			return Automaton{}, err
		}

		for _, ch := range chars {
			nextSet, err := a.move(cur.set, ch)
			if err != nil {
				return Automaton{}, err
			}
			if nextSet.Empty() {
				continue
			}

			key := subsetKey(nextSet)
			id, ok := subsetIDs[key]
			if !ok {
				nextID++
				id = nextID
				subsetIDs[key] = id
				result.AddState(id)
				queue = append(queue, entry{set: nextSet, id: id})
			}

			result.AddTransition(cur.id, ch, id)
			if a.anyTerminal(nextSet) {
				result.MarkTerminal(id)
			}
		}
	}

	return result, nil
}
