package relfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Regex_Eval(t *testing.T) {
	testCases := []struct {
		name   string
		expr   string
		word   string
		expect bool
	}{
		{name: "group star tail", expr: "ab(cd|ef)*", word: "abcdefefcdefef", expect: true},
		{name: "plain concatenation", expr: "abcdefg", word: "abcdefg", expect: true},
		{name: "starred group", expr: "(abc)*", word: "abcabcabc", expect: true},
		{name: "zero repetitions of starred literal", expr: "abc*", word: "ab", expect: true},
		{name: "repeated starred literal", expr: "abcc*", word: "abccc", expect: true},
		{name: "starred alternation", expr: "(ab|c)*", word: "abcccababc", expect: true},
		{name: "nested stars", expr: "abc(def(hij)*)*", word: "abcdefhijhijdefhijhij", expect: true},
		{name: "wrong trailing symbol", expr: "abc*", word: "abz", expect: false},
		{name: "alternation rejects empty", expr: "a|b", word: "", expect: false},
		{name: "starred alternation accepts empty", expr: "(a|b)*", word: "", expect: true},
		{name: "star group partial repetition", expr: "(abc)*", word: "abcab", expect: false},
		{name: "single literal", expr: "a", word: "a", expect: true},
		{name: "single literal wrong word", expr: "a", word: "b", expect: false},
		{name: "alternation left", expr: "a|b", word: "a", expect: true},
		{name: "alternation right", expr: "a|b", word: "b", expect: true},
		{name: "alternation both rejected", expr: "a|b", word: "ab", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			rx, err := New(tc.expr)
			if !assert.NoError(err) {
				return
			}

			// execute
			actual := rx.Eval(tc.word)

			// assert
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_New_invalidExpressions(t *testing.T) {
	testCases := []struct {
		name string
		expr string
	}{
		{name: "empty expression", expr: ""},
		{name: "unbalanced open", expr: "(ab"},
		{name: "unbalanced close", expr: "ab)"},
		{name: "dangling alternation", expr: "ab|"},
		{name: "star with no operand", expr: "*"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)

			// execute
			rx, err := New(tc.expr)

			// assert
			assert.Nil(rx)
			assert.ErrorIs(err, ErrNotRegex)
		})
	}
}

func Test_Regex_SetExpression(t *testing.T) {
	assert := assert.New(t)

	rx, err := New("a*")
	if !assert.NoError(err) {
		return
	}

	assert.True(rx.Eval("aaa"))
	assert.False(rx.Eval("b"))

	if !assert.NoError(rx.SetExpression("b*")) {
		return
	}

	assert.Equal("b*", rx.Expression())
	assert.True(rx.Eval("bbb"))
	assert.False(rx.Eval("aaa"))
}

func Test_Regex_SetExpression_failureKeepsOld(t *testing.T) {
	assert := assert.New(t)

	rx, err := New("ab")
	if !assert.NoError(err) {
		return
	}

	assert.ErrorIs(rx.SetExpression("(ab"), ErrNotRegex)

	// the old expression must still be compiled in
	assert.Equal("ab", rx.Expression())
	assert.True(rx.Eval("ab"))
}

func Test_Regex_NFA_renumberedAndUsable(t *testing.T) {
	assert := assert.New(t)

	rx, err := New("(a|b)*c")
	if !assert.NoError(err) {
		return
	}

	nfa := rx.NFA()
	assert.NoError(nfa.Validate())
	assert.True(nfa.Accept("ababc"))
	assert.False(nfa.Accept("abab"))
}

func Test_Regex_compiledNFARefusesDFA(t *testing.T) {
	// the compiled NFA has lambda-edges, so subset construction must refuse
	// it
	assert := assert.New(t)

	rx, err := New("(a|b)*")
	if !assert.NoError(err) {
		return
	}

	_, err = rx.NFA().ToDFA()
	assert.Error(err)
}
