package debugger

// lineeditor.go wraps golang.org/x/term's line editor with the debugger's
// prompt.

import (
	"io"

	"golang.org/x/term"
)

// LineEditor adapts a term.Terminal to the debugger's LineReader
// contract.
//
// History (up/down arrow recall) is handled entirely inside
// golang.org/x/term.Terminal, which keeps a fixed 100-entry ring buffer with
// no exported way to resize it. A 1024-entry history is therefore
// unreachable through this library without forking it; 100 is the history
// depth this editor actually provides.
type LineEditor struct {
	term *term.Terminal
}

// NewLineEditor returns a LineEditor prompting "(lc3vm) " over rw, which
// must already be in raw mode (see tty.Console).
func NewLineEditor(rw io.ReadWriter) *LineEditor {
	return &LineEditor{term: term.NewTerminal(rw, "(lc3vm) ")}
}

// ReadLine reads one command line. It returns io.EOF when the operator
// closes input (Ctrl-D), matching the contract the REPL depends on to quit
// cleanly.
func (e *LineEditor) ReadLine() (string, error) {
	return e.term.ReadLine()
}
