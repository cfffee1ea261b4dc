// Package input contains the line readers the matcher shell gets its
// commands from: one for reading any generic input stream directly and one
// backed by readline for interactive TTY sessions.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is the shell's source of command lines. ReadCommand blocks until a
// line containing non-space characters is read, returns io.EOF at end of
// input, and must have Close called on it before disposal.
type Reader interface {
	ReadCommand() (string, error)
	Close() error
}

// DirectReader implements Reader and reads commands from any generic input
// stream directly. It can be used with any io.Reader but does not sanitize
// the input of control and escape sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader implements Reader and reads commands from stdin using a
// go implementation of the GNU Readline library. This keeps input clear of
// all typing and editing escape sequences and enables the use of command
// history. This should in general only be used when directly connected to a
// TTY for input.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a new DirectReader and initializes a buffered
// reader on the provided stream.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveReader and initializes
// readline. The returned Reader must have Close() called on it before
// disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// Close cleans up resources associated with the DirectReader. For now it
// doesn't really do anything as the DirectReader does not create resources,
// but callers should treat it as though it must be called.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadCommand reads the next line from the stream. The returned string will
// only be empty if there is an error reading input, otherwise this function
// is blocked on until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadCommand reads the next command from stdin. The returned string will
// only be empty if there is an error, otherwise this function is blocked on
// until a line consisting of more than empty or whitespace-only input is
// read.
func (ir *InteractiveReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}
