package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrAborted is returned by ReadLine when the user cancels the current line
// with Ctrl-C.
var ErrAborted = errors.New("input aborted")

// LineReader is an interactive input source. ReadLine returns io.EOF once the
// input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// historyRecorder is implemented by readers that keep their own recall list.
type historyRecorder interface {
	AppendHistory(line string)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// BufferedReader reads newline-terminated lines from any reader and echoes
// the prompt to out.
type BufferedReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	closer  io.Closer
}

func NewBufferedReader(in io.Reader, out io.Writer) *BufferedReader {
	r := &BufferedReader{scanner: bufio.NewScanner(in), out: out}
	if c, ok := in.(io.Closer); ok && in != os.Stdin {
		r.closer = c
	}
	return r
}

func (r *BufferedReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.out != nil {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *BufferedReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// TerminalReader edits lines with github.com/peterh/liner.
type TerminalReader struct {
	state *liner.State
}

func NewTerminalReader(completer func(line string) []string) *TerminalReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if completer != nil {
		state.SetCompleter(completer)
	}
	return &TerminalReader{state: state}
}

func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	return line, err
}

func (r *TerminalReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal mode.
func (r *TerminalReader) Close() error {
	return r.state.Close()
}
