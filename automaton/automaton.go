// Package automaton implements finite automata over 8-bit input symbols,
// including nondeterministic automata with lambda-transitions. An Automaton
// is a value type: states refer to each other by integer id rather than by
// pointer, so automata can be cloned, renumbered, and combined without any
// aliasing concerns even though the transition graph may contain cycles.
//
// The distinguished transition character '-' (Epsilon) marks a
// lambda-transition, which consumes no input when followed.
package automaton

import (
	"fmt"
	"strings"

	"github.com/tiberiu1204/regex-lfa/internal/util"
)

// Epsilon is the reserved transition character for lambda-transitions.
const Epsilon byte = '-'

// Edge is a single transition: an input character and the id of the
// destination state. Edges are immutable once inserted into a Node.
type Edge struct {
	Input byte
	Dest  int
}

func (e Edge) String() string {
	return fmt.Sprintf("('%s', %d)", string(e.Input), e.Dest)
}

// Node is a single state: its id, whether it is a terminal (accepting)
// state, and its outgoing edges in insertion order. Duplicate edges are
// permitted; they do not affect acceptance.
type Node struct {
	State    int
	Terminal bool
	Edges    []Edge
}

func (n Node) String() string {
	var moves strings.Builder

	for i := range n.Edges {
		moves.WriteString(n.Edges[i].String())
		if i+1 < len(n.Edges) {
			moves.WriteRune(',')
			moves.WriteRune(' ')
		}
	}

	str := fmt.Sprintf("(%d [%s])", n.State, moves.String())

	if n.Terminal {
		str = "(" + str + ")"
	}

	return str
}

// Automaton is a finite automaton: a map of states keyed by id, and a
// designated initial state. The terminal states are those whose Node has the
// Terminal flag set. Use New to create one; the zero value has no states,
// and AddState creates its state map on first use.
type Automaton struct {
	nodes map[int]Node
	start int
}

// New creates a new empty Automaton with no states.
func New() Automaton {
	return Automaton{nodes: map[int]Node{}}
}

// NewLiteral creates the automaton accepting exactly the one-character word
// ch: states {0, 1}, initial state 0, terminal state 1, and the single
// transition 0 =ch=> 1.
func NewLiteral(ch byte) Automaton {
	a := New()
	a.AddState(0)
	a.AddState(1)
	a.MarkTerminal(1)
	a.AddTransition(0, ch, 1)
	a.start = 0
	return a
}

// AddState inserts a new non-terminal state with the given id. It has no
// effect if the state already exists.
func (a *Automaton) AddState(state int) {
	if _, ok := a.nodes[state]; ok {
		// already there, nothing to do
		return
	}

	if a.nodes == nil {
		a.nodes = map[int]Node{}
	}

	a.nodes[state] = Node{State: state}
}

// AddTransition inserts an edge from one state to another on the given input
// character. Both states must already exist; it panics otherwise, as an edge
// to a state that does not exist could never be followed.
func (a *Automaton) AddTransition(from int, input byte, to int) {
	fromNode, ok := a.nodes[from]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %d", from))
	}
	if _, ok := a.nodes[to]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %d", to))
	}

	fromNode.Edges = append(fromNode.Edges, Edge{Input: input, Dest: to})
	a.nodes[from] = fromNode
}

// SetStart designates the initial state. The state must already exist; it
// panics otherwise.
func (a *Automaton) SetStart(state int) {
	if _, ok := a.nodes[state]; !ok {
		panic(fmt.Sprintf("set start to non-existent state %d", state))
	}
	a.start = state
}

// Start returns the id of the initial state.
func (a Automaton) Start() int {
	return a.start
}

// MarkTerminal sets the terminal flag on the given state. The state must
// already exist; it panics otherwise.
func (a *Automaton) MarkTerminal(state int) {
	n, ok := a.nodes[state]
	if !ok {
		panic(fmt.Sprintf("mark non-existent state %d as terminal", state))
	}
	n.Terminal = true
	a.nodes[state] = n
}

// IsTerminal returns whether the given state is a terminal (accepting)
// state. Returns false if the state does not exist.
func (a Automaton) IsTerminal(state int) bool {
	n, ok := a.nodes[state]
	if !ok {
		return false
	}
	return n.Terminal
}

// States returns the ids of all states, sorted ascending.
func (a Automaton) States() []int {
	return util.OrderedKeys(a.nodes)
}

// Len returns the number of states.
func (a Automaton) Len() int {
	return len(a.nodes)
}

// Edges returns the outgoing edges of the given state in insertion order.
// Returns nil if the state does not exist.
func (a Automaton) Edges(state int) []Edge {
	return a.nodes[state].Edges
}

// Copy returns a deep copy of the automaton.
func (a Automaton) Copy() Automaton {
	cp := New()
	cp.start = a.start

	for id, n := range a.nodes {
		nn := Node{State: n.State, Terminal: n.Terminal}
		nn.Edges = append(nn.Edges, n.Edges...)
		cp.nodes[id] = nn
	}

	return cp
}

// Accept simulates the automaton on the given word and reports whether it is
// accepted. Acceptance is full-match: the word is accepted iff some path
// from the initial state consumes every character of the word and ends on a
// terminal state. Lambda-edges may be followed at any point without
// consuming input.
//
// The simulation is an iterative depth-first search over (state, index)
// configurations. Recursion would overflow the goroutine stack on long
// words; with an explicit work stack and a per-state visited index-set the
// search is bounded by |states| * (|word|+1) configurations even when the
// automaton contains lambda-cycles.
func (a Automaton) Accept(word string) bool {
	if len(a.nodes) == 0 {
		return false
	}

	type config struct {
		state int
		index int
	}

	stack := util.Stack[config]{}
	stack.Push(config{state: a.start, index: 0})

	visited := map[int]util.KeySet[int]{}

	for stack.Len() > 0 {
		c := stack.Pop()
		n := a.nodes[c.state]

		if c.index == len(word) && n.Terminal {
			return true
		}

		vis, ok := visited[c.state]
		if !ok {
			vis = util.NewKeySet[int]()
			visited[c.state] = vis
		}
		vis.Add(c.index)

		for _, e := range n.Edges {
			if c.index < len(word) && e.Input == word[c.index] {
				if !visited[e.Dest].Has(c.index + 1) {
					stack.Push(config{state: e.Dest, index: c.index + 1})
				}
			} else if e.Input == Epsilon {
				if !visited[e.Dest].Has(c.index) {
					stack.Push(config{state: e.Dest, index: c.index})
				}
			}
		}
	}

	return false
}

// Validate returns a single error listing every problem it finds of the
// following kinds:
//
// Any edge leading to a state that doesn't exist.
// A start state that isn't a state that exists.
// State ids that do not form the contiguous range [0, Len()).
func (a Automaton) Validate() error {
	errs := ""

	for _, id := range a.States() {
		n := a.nodes[id]
		for i := range n.Edges {
			if _, ok := a.nodes[n.Edges[i].Dest]; !ok {
				errs += fmt.Sprintf("\nstate %d transitions to non-existent state: %s", id, n.Edges[i])
			}
		}
	}

	if _, ok := a.nodes[a.start]; !ok && len(a.nodes) > 0 {
		errs += fmt.Sprintf("\nstart state does not exist: %d", a.start)
	}

	for i, id := range a.States() {
		if id != i {
			errs += fmt.Sprintf("\nstate ids are not contiguous: expected %d, found %d", i, id)
			break
		}
	}

	if len(errs) > 0 {
		errs = errs[1:]
		return fmt.Errorf("%s", errs)
	}

	return nil
}

func (a Automaton) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<START: %d, STATES:", a.start))

	orderedStates := a.States()

	for i := range orderedStates {
		sb.WriteString("\n\t")
		sb.WriteString(a.nodes[orderedStates[i]].String())

		if i+1 < len(a.nodes) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}
