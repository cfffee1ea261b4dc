package relfa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/rosed"

	"github.com/tiberiu1204/regex-lfa/automaton"
	"github.com/tiberiu1204/regex-lfa/internal/input"
	"github.com/tiberiu1204/regex-lfa/internal/patfile"
)

const consoleOutputWidth = 80

var commandHelp = [][2]string{
	{"HELP", "show this help"},
	{"EXPR REGEX", "compile a new regular expression and make it current"},
	{"MATCH [WORD]", "test whether the current automaton accepts WORD (empty if omitted)"},
	{"USE NAME", "compile the named pattern from the loaded pattern set"},
	{"PATTERNS", "list the patterns loaded from the pattern-set file"},
	{"LOAD FILE", "read an NFA from a text-format automaton file"},
	{"OPEN FILE", "read a previously saved compiled automaton"},
	{"SAVE FILE", "write the current automaton to a binary file"},
	{"DFA", "replace the current automaton with its subset-construction DFA"},
	{"SHOW", "print the current automaton"},
	{"QUIT/BYE", "end the session"},
}

// Engine contains the things needed to run an interactive matcher session
// attached to an input stream and an output stream. It tracks a current
// automaton, which is either the compiled form of the last EXPR/USE command
// or an automaton brought in with LOAD/OPEN, and matches words against it.
type Engine struct {
	auto     automaton.Automaton
	haveAuto bool
	source   string

	patterns map[string]string
	patNames []string

	in      input.Reader
	out     *bufio.Writer
	running bool
}

// NewEngine creates a new engine ready to operate on the given input and
// output streams. It will immediately open a buffered writer on the output
// stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for
// the output stream, stdout is used. If patternFilePath is non-empty, the
// pattern-set file at that path is loaded and its patterns are made
// available to the USE command.
func NewEngine(inputStream io.Reader, outputStream io.Writer, patternFilePath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		out:      bufio.NewWriter(outputStream),
		patterns: map[string]string{},
	}

	if patternFilePath != "" {
		set, err := patfile.LoadFile(patternFilePath)
		if err != nil {
			return nil, err
		}
		for _, p := range set.Patterns {
			eng.patterns[p.Name] = p.Expr
			eng.patNames = append(eng.patNames, p.Name)
		}
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes the engine's input reader. It must be called before disposal.
func (eng *Engine) Close() error {
	return eng.in.Close()
}

// RunUntilQuit begins reading commands and executing them against the
// current automaton, and does not return until the QUIT command is input or
// the input stream runs out. Any commands in startCommands are executed
// before the first read.
func (eng *Engine) RunUntilQuit(startCommands []string) error {
	eng.running = true

	for _, cmd := range startCommands {
		if !eng.running {
			break
		}
		if err := eng.execute(strings.TrimSpace(cmd)); err != nil {
			return err
		}
	}

	for eng.running {
		line, err := eng.in.ReadCommand()
		if err != nil {
			if err == io.EOF {
				eng.running = false
				break
			}
			return fmt.Errorf("read command: %w", err)
		}

		if err := eng.execute(line); err != nil {
			return err
		}
	}

	return nil
}

// execute runs a single command line. Problems with the command itself are
// printed to the output stream; only IO errors are returned.
func (eng *Engine) execute(line string) error {
	if line == "" {
		return nil
	}

	verb, arg := splitVerb(line)

	var output string

	switch verb {
	case "QUIT", "BYE", "EXIT":
		eng.running = false
		output = "Goodbye"
	case "HELP":
		ed := rosed.
			Edit("").
			WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
			InsertDefinitionsTable(0, commandHelp, consoleOutputWidth)
		output = ed.
			Insert(0, "Here are the commands you can use:\n").
			String()
	case "EXPR":
		if arg == "" {
			output = "EXPR requires a regular expression"
			break
		}
		rx, err := New(arg)
		if err != nil {
			output = fmt.Sprintf("Not a valid regex: %s", err.Error())
			break
		}
		eng.auto = rx.NFA()
		eng.haveAuto = true
		eng.source = arg
		output = fmt.Sprintf("Compiled %q (%d states)", arg, eng.auto.Len())
	case "USE":
		expr, ok := eng.patterns[arg]
		if !ok {
			output = fmt.Sprintf("No pattern named %q in the loaded set", arg)
			break
		}
		rx, err := New(expr)
		if err != nil {
			output = fmt.Sprintf("Pattern %q is not a valid regex: %s", arg, err.Error())
			break
		}
		eng.auto = rx.NFA()
		eng.haveAuto = true
		eng.source = expr
		output = fmt.Sprintf("Compiled pattern %q = %q (%d states)", arg, expr, eng.auto.Len())
	case "PATTERNS":
		if len(eng.patNames) == 0 {
			output = "No pattern set is loaded"
			break
		}
		var sb strings.Builder
		sb.WriteString("Loaded patterns:\n")
		for _, name := range eng.patNames {
			sb.WriteString(fmt.Sprintf("  %s = %q\n", name, eng.patterns[name]))
		}
		output = strings.TrimRight(sb.String(), "\n")
	case "MATCH":
		if !eng.haveAuto {
			output = "No automaton is loaded; use EXPR, USE, LOAD, or OPEN first"
			break
		}
		if eng.auto.Accept(arg) {
			output = fmt.Sprintf("ACCEPT %q", arg)
		} else {
			output = fmt.Sprintf("REJECT %q", arg)
		}
	case "LOAD":
		f, err := os.Open(arg)
		if err != nil {
			output = fmt.Sprintf("Could not open %q: %s", arg, err.Error())
			break
		}
		a, err := automaton.Load(f)
		f.Close()
		if err != nil {
			output = fmt.Sprintf("Could not load automaton: %s", err.Error())
			break
		}
		eng.auto = a
		eng.haveAuto = true
		eng.source = arg
		output = fmt.Sprintf("Loaded automaton with %d states from %q", a.Len(), arg)
	case "OPEN":
		data, err := os.ReadFile(arg)
		if err != nil {
			output = fmt.Sprintf("Could not read %q: %s", arg, err.Error())
			break
		}
		var a automaton.Automaton
		if _, err := rezi.DecBinary(data, &a); err != nil {
			output = fmt.Sprintf("Could not decode automaton: %s", err.Error())
			break
		}
		eng.auto = a
		eng.haveAuto = true
		eng.source = arg
		output = fmt.Sprintf("Opened automaton with %d states from %q", a.Len(), arg)
	case "SAVE":
		if !eng.haveAuto {
			output = "No automaton is loaded; nothing to save"
			break
		}
		data := rezi.EncBinary(eng.auto)
		if err := os.WriteFile(arg, data, 0664); err != nil {
			output = fmt.Sprintf("Could not write %q: %s", arg, err.Error())
			break
		}
		output = fmt.Sprintf("Saved current automaton to %q", arg)
	case "DFA":
		if !eng.haveAuto {
			output = "No automaton is loaded; use EXPR, USE, LOAD, or OPEN first"
			break
		}
		dfa, err := eng.auto.ToDFA()
		if err != nil {
			if errors.Is(err, automaton.ErrHasLambda) {
				output = "The current automaton has lambda-transitions and cannot be converted"
			} else {
				output = fmt.Sprintf("Could not convert: %s", err.Error())
			}
			break
		}
		eng.auto = dfa
		output = fmt.Sprintf("Converted; the DFA has %d states", dfa.Len())
	case "SHOW":
		if !eng.haveAuto {
			output = "No automaton is loaded; use EXPR, USE, LOAD, or OPEN first"
			break
		}
		output = fmt.Sprintf("Current automaton (from %q):\n%s", eng.source, eng.auto.String())
	default:
		output = fmt.Sprintf("I don't know how to %q; type HELP for a list of commands", verb)
	}

	if _, err := eng.out.WriteString(output + "\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	return nil
}

// splitVerb splits a command line into its uppercased verb and the argument
// remainder. The argument keeps its original case; MATCH arguments in
// particular are matched verbatim.
func splitVerb(line string) (verb, arg string) {
	parts := strings.SplitN(line, " ", 2)
	verb = strings.ToUpper(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return verb, arg
}
