// Package tty_test exercises the console's error and nil-receiver paths.
//
// None of these tests is skipped. They assume standard input is not a
// terminal, which holds under "go test" (it redirects stdin), so the
// raw-mode path is not exercised here.
package tty_test

import (
	"errors"
	"os"
	"testing"

	"github.com/nwillis/lc3vm/internal/tty"
)

func TestNewConsole_notATerminal(t *testing.T) {
	// go test redirects standard input away from a terminal, so this always
	// exercises the ErrNoTTY path, never the raw-mode path.
	console, err := tty.NewConsole(os.Stdin)
	if console != nil {
		t.Errorf("expected nil console, got %v", console)
	}

	if !errors.Is(err, tty.ErrNoTTY) {
		t.Errorf("expected ErrNoTTY, got %v", err)
	}
}

func TestRestore_nilIsSafe(t *testing.T) {
	var console *tty.Console

	if err := console.Restore(); err != nil {
		t.Errorf("Restore on nil console: %v", err)
	}
}
