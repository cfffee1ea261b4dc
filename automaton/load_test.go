package automaton

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	input := `4
0 1 2 3
5
0 1 a
1 2 b
2 3 c
0 0 x
1 3 -
0
2
3 0
`

	a, err := Load(strings.NewReader(input))
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]int{0, 1, 2, 3}, a.States())
	assert.Equal(0, a.Start())
	assert.True(a.IsTerminal(3))
	assert.True(a.IsTerminal(0))
	assert.False(a.IsTerminal(1))

	assert.True(a.Accept("abc"))
	assert.True(a.Accept("xxabc"))
	assert.True(a.Accept("a" /* lambda-edge 1 -> 3 */))
	assert.True(a.Accept(""))
	assert.False(a.Accept("ab"))
}

func Test_Load_leavesTrailingDataUnread(t *testing.T) {
	assert := assert.New(t)

	input := `2
0 1
1
0 1 a
0
1
1
a
aa
`

	r := strings.NewReader(input)

	a, err := Load(r)
	if !assert.NoError(err) {
		return
	}

	assert.True(a.Accept("a"))

	// the test-word list after the automaton belongs to the caller
	var word string
	_, err = fmt.Fscan(r, &word)
	assert.NoError(err)
	assert.Equal("a", word)

	_, err = fmt.Fscan(r, &word)
	assert.NoError(err)
	assert.Equal("aa", word)
}

func Test_Load_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "non-numeric state count", input: "banana"},
		{name: "truncated state list", input: "3\n0 1"},
		{name: "transition with undeclared source", input: "1\n0\n1\n5 0 a\n0\n0\n"},
		{name: "transition with undeclared destination", input: "1\n0\n1\n0 5 a\n0\n0\n"},
		{name: "multi-char transition token", input: "2\n0 1\n1\n0 1 ab\n0\n0\n"},
		{name: "undeclared initial state", input: "1\n0\n0\n7\n0\n"},
		{name: "undeclared terminal state", input: "1\n0\n0\n0\n1\n9\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)

			// execute
			_, err := Load(strings.NewReader(tc.input))

			// assert
			assert.Error(err)
		})
	}
}
