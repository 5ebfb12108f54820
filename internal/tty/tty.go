// Package tty adapts the host terminal to the machine's console: raw-mode
// toggling and a non-blocking readiness probe for the keyboard device.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned when standard input is not a terminal; raw mode and the
// non-blocking probe both require one.
var ErrNoTTY = errors.New("tty: not a terminal")

// Console adapts a terminal-backed file to the machine's console contract: a
// non-blocking byte-ready probe (§4.5) and a blocking byte read, plus raw-mode
// acquisition and release (§5).
type Console struct {
	in    *os.File
	fd    int
	saved *unix.Termios
	buf   *bufio.Reader
}

// NewConsole puts in into no-echo, non-canonical mode and returns a Console
// reading from it. ISIG is deliberately left enabled: the operator's SIGINT
// (the run controller's console interrupt, §4.6) must still reach the
// process, which a fully "raw" terminal (as produced by [term.MakeRaw]) would
// suppress. Callers must call Restore on every exit path to release the
// terminal.
func NewConsole(in *os.File) (*Console, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := unix.IoctlGetTermios(fd, getTermiosIoctl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	c := &Console{
		in:    in,
		fd:    fd,
		saved: saved,
		buf:   bufio.NewReader(in),
	}

	raw := *saved
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setTermiosIoctl, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	return c, nil
}

// Restore returns the terminal to the state it held before NewConsole. It is
// safe to call more than once and on a nil receiver's zero value.
func (c *Console) Restore() error {
	if c == nil || c.saved == nil {
		return nil
	}

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, c.saved)
}

// Write sends output to the terminal. It lets a Console double as the
// io.ReadWriter a line editor needs.
func (c *Console) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// Read satisfies io.Reader over the console's input stream.
func (c *Console) Read(p []byte) (int, error) {
	return c.buf.Read(p)
}

// Ready reports whether at least one byte is available on the console without
// blocking and without consuming it. It implements the console input probe of
// §4.5: a zero-timeout poll.
func (c *Console) Ready() bool {
	if c.buf.Buffered() > 0 {
		return true
	}

	fdSet := &unix.FdSet{}
	fdSet.Set(c.fd)

	tv := unix.Timeval{} // zero timeout: poll, don't block.

	n, err := unix.Select(c.fd+1, fdSet, nil, nil, &tv)

	return err == nil && n > 0
}

// ReadByte blocks until one byte is available and returns it.
func (c *Console) ReadByte() (byte, error) {
	return c.buf.ReadByte()
}
