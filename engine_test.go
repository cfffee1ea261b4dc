package relfa

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runSession executes the given command lines against a fresh engine reading
// directly from a string, and returns everything the engine printed.
func runSession(t *testing.T, patternFile string, lines ...string) string {
	t.Helper()

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	eng, err := NewEngine(in, &out, patternFile, true)
	if err != nil {
		t.Fatalf("could not create engine: %v", err)
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(nil); err != nil {
		t.Fatalf("session failed: %v", err)
	}

	return out.String()
}

func Test_Engine_exprAndMatch(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"EXPR ab*",
		"MATCH abbb",
		"MATCH ba",
		"QUIT",
	)

	assert.Contains(output, `ACCEPT "abbb"`)
	assert.Contains(output, `REJECT "ba"`)
	assert.Contains(output, "Goodbye")
}

func Test_Engine_matchEmptyWord(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"EXPR (a|b)*",
		"MATCH",
		"QUIT",
	)

	assert.Contains(output, `ACCEPT ""`)
}

func Test_Engine_invalidExpr(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"EXPR (ab",
		"QUIT",
	)

	assert.Contains(output, "Not a valid regex")
}

func Test_Engine_matchWithoutAutomaton(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"MATCH abc",
		"QUIT",
	)

	assert.Contains(output, "No automaton is loaded")
}

func Test_Engine_unknownCommand(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"FROBNICATE",
		"QUIT",
	)

	assert.Contains(output, `I don't know how to "FROBNICATE"`)
}

func Test_Engine_loadAndDFA(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	nfaFile := filepath.Join(dir, "even-as.nfa")

	// an NFA accepting words of a with even length, no lambda-edges
	content := `2
0 1
2
0 1 a
1 0 a
0
1
0
`
	if err := os.WriteFile(nfaFile, []byte(content), 0664); err != nil {
		t.Fatalf("could not write NFA file: %v", err)
	}

	output := runSession(t, "",
		"LOAD "+nfaFile,
		"MATCH aa",
		"MATCH a",
		"DFA",
		"MATCH aa",
		"QUIT",
	)

	assert.Contains(output, "Loaded automaton with 2 states")
	assert.Contains(output, `ACCEPT "aa"`)
	assert.Contains(output, `REJECT "a"`)
	assert.Contains(output, "Converted; the DFA has")
}

func Test_Engine_dfaRejectsLambdaAutomaton(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"EXPR a*",
		"DFA",
		"QUIT",
	)

	assert.Contains(output, "has lambda-transitions")
}

func Test_Engine_saveAndOpen(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	saved := filepath.Join(dir, "pattern.bin")

	output := runSession(t, "",
		"EXPR (ab)*",
		"SAVE "+saved,
		"QUIT",
	)
	assert.Contains(output, "Saved current automaton")

	output = runSession(t, "",
		"OPEN "+saved,
		"MATCH abab",
		"MATCH aba",
		"QUIT",
	)
	assert.Contains(output, "Opened automaton")
	assert.Contains(output, `ACCEPT "abab"`)
	assert.Contains(output, `REJECT "aba"`)
}

func Test_Engine_patternSet(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	patFile := filepath.Join(dir, "patterns.toml")

	content := `format = "relfa"
type = "patterns"

[[pattern]]
name = "binary"
expr = "(0|1)(0|1)*"

[[pattern]]
name = "abs"
expr = "a*b*"
`
	if err := os.WriteFile(patFile, []byte(content), 0664); err != nil {
		t.Fatalf("could not write pattern file: %v", err)
	}

	output := runSession(t, patFile,
		"PATTERNS",
		"USE binary",
		"MATCH 0110",
		"MATCH 012",
		"USE nope",
		"QUIT",
	)

	assert.Contains(output, "binary")
	assert.Contains(output, "abs")
	assert.Contains(output, `ACCEPT "0110"`)
	assert.Contains(output, `REJECT "012"`)
	assert.Contains(output, `No pattern named "nope"`)
}
