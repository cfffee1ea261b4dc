package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildAutomaton constructs an automaton from a state count, a transition
// list, an initial state, and terminal states, for concise test tables.
func buildAutomaton(numStates int, transitions [][3]int, init int, terminals []int) Automaton {
	a := New()

	for i := 0; i < numStates; i++ {
		a.AddState(i)
	}

	for _, t := range transitions {
		a.AddTransition(t[0], byte(t[1]), t[2])
	}

	a.SetStart(init)

	for _, t := range terminals {
		a.MarkTerminal(t)
	}

	return a
}

func Test_Accept(t *testing.T) {
	testCases := []struct {
		name        string
		numStates   int
		transitions [][3]int
		init        int
		terminals   []int
		word        string
		expect      bool
	}{
		{
			name:        "single symbol accepts it",
			numStates:   2,
			transitions: [][3]int{{0, 'a', 1}},
			init:        0,
			terminals:   []int{1},
			word:        "a",
			expect:      true,
		},
		{
			name:        "single symbol rejects other symbol",
			numStates:   2,
			transitions: [][3]int{{0, 'a', 1}},
			init:        0,
			terminals:   []int{1},
			word:        "b",
			expect:      false,
		},
		{
			name:        "full match only, trailing input rejected",
			numStates:   2,
			transitions: [][3]int{{0, 'a', 1}},
			init:        0,
			terminals:   []int{1},
			word:        "aa",
			expect:      false,
		},
		{
			name:        "terminal init state accepts empty word",
			numStates:   1,
			transitions: nil,
			init:        0,
			terminals:   []int{0},
			word:        "",
			expect:      true,
		},
		{
			name:        "non-terminal init state rejects empty word",
			numStates:   2,
			transitions: [][3]int{{0, 'a', 1}},
			init:        0,
			terminals:   []int{1},
			word:        "",
			expect:      false,
		},
		{
			name:        "lambda-edge consumes nothing",
			numStates:   3,
			transitions: [][3]int{{0, int(Epsilon), 1}, {1, 'a', 2}},
			init:        0,
			terminals:   []int{2},
			word:        "a",
			expect:      true,
		},
		{
			name:        "lambda-cycle terminates and accepts",
			numStates:   3,
			transitions: [][3]int{{0, int(Epsilon), 1}, {1, int(Epsilon), 0}, {1, 'a', 2}},
			init:        0,
			terminals:   []int{2},
			word:        "a",
			expect:      true,
		},
		{
			name:        "lambda-cycle terminates and rejects",
			numStates:   3,
			transitions: [][3]int{{0, int(Epsilon), 1}, {1, int(Epsilon), 0}, {1, 'a', 2}},
			init:        0,
			terminals:   []int{2},
			word:        "b",
			expect:      false,
		},
		{
			name:      "nondeterministic split, one branch accepts",
			numStates: 4,
			transitions: [][3]int{
				{0, 'a', 1},
				{0, 'a', 2},
				{1, 'b', 3},
				{2, 'c', 3},
			},
			init:      0,
			terminals: []int{3},
			word:      "ac",
			expect:    true,
		},
		{
			name:      "duplicate edges do not affect acceptance",
			numStates: 2,
			transitions: [][3]int{
				{0, 'a', 1},
				{0, 'a', 1},
				{0, 'a', 1},
			},
			init:      0,
			terminals: []int{1},
			word:      "a",
			expect:    true,
		},
		{
			name:        "loop on self consumes repeated input",
			numStates:   2,
			transitions: [][3]int{{0, 'a', 0}, {0, 'b', 1}},
			init:        0,
			terminals:   []int{1},
			word:        "aaaab",
			expect:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			a := buildAutomaton(tc.numStates, tc.transitions, tc.init, tc.terminals)

			// execute
			actual := a.Accept(tc.word)

			// assert
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Accept_emptyAutomaton(t *testing.T) {
	assert := assert.New(t)

	a := New()

	assert.False(a.Accept(""))
	assert.False(a.Accept("a"))
}

func Test_Accept_lambdaCycleWithNoExit(t *testing.T) {
	// a pure lambda-cycle with no terminal state anywhere; the simulator
	// must come back with a rejection rather than spin
	assert := assert.New(t)

	a := buildAutomaton(2, [][3]int{
		{0, int(Epsilon), 1},
		{1, int(Epsilon), 0},
	}, 0, nil)

	assert.False(a.Accept(""))
	assert.False(a.Accept("xyz"))
}

func Test_AddTransition_panicsOnMissingStates(t *testing.T) {
	assert := assert.New(t)

	a := New()
	a.AddState(0)

	assert.Panics(func() {
		a.AddTransition(0, 'a', 1)
	})
	assert.Panics(func() {
		a.AddTransition(1, 'a', 0)
	})
}

func Test_Validate(t *testing.T) {
	assert := assert.New(t)

	good := buildAutomaton(3, [][3]int{{0, 'a', 1}, {1, 'b', 2}}, 0, []int{2})
	assert.NoError(good.Validate())

	gapped := New()
	gapped.AddState(0)
	gapped.AddState(2)
	gapped.SetStart(0)
	assert.Error(gapped.Validate())
}

func Test_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	orig := buildAutomaton(2, [][3]int{{0, 'a', 1}}, 0, []int{1})
	cp := orig.Copy()

	cp.AddState(2)
	cp.AddTransition(1, 'b', 2)
	cp.MarkTerminal(2)

	assert.Equal(2, orig.Len())
	assert.Equal(3, cp.Len())
	assert.False(orig.Accept("ab"))
	assert.True(cp.Accept("ab"))
}
