/*
Relfa starts an interactive regex matcher session.

It reads commands from stdin and prints results to stdout until the session
is over or the "QUIT" command is input. An expression is made current with
the EXPR command (or USE, with a pattern-set file loaded), after which MATCH
tests words against it; automata can also be brought in from NFA text files
with LOAD, converted with DFA, and saved or reopened in compiled form with
SAVE and OPEN.

Usage:

	relfa [flags]

The flags are:

	-v, --version
		Give the current version of relfa and then exit.

	-p, --patterns FILE
		Load the named patterns in the given pattern-set file and make them
		available to the USE command.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched
		in a tty with stdin and stdout.

	-c, --command COMMANDS
		Immediately run the given command(s) at start. Can be multiple
		commands separated by the ";" character.

Once a session has started, type "HELP" for an explanation of the commands.
To exit the session, type "QUIT".
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	relfa "github.com/tiberiu1204/regex-lfa"
	"github.com/tiberiu1204/regex-lfa/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode   int     = ExitSuccess
	flagVersion  *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	patternsFile *string = pflag.StringP("patterns", "p", "", "A pattern-set file whose named patterns are made available to USE")
	forceDirect  *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand *string = pflag.StringP("command", "c", "", "Execute the given commands immediately at start and leave the session open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	eng, initErr := relfa.NewEngine(os.Stdin, os.Stdout, *patternsFile, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit(startCommands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
