package vm

// control.go implements the three-state run controller (§4.6): off,
// single-step, and full-speed, with transitions driven by either the
// instruction stream (HALT, illegal opcode) or an asynchronous console
// interrupt.

import (
	"fmt"
	"sync/atomic"
)

// RunState is one of the machine's three run states. The zero value is Off.
type RunState int32

// Run states (§4.6).
const (
	Off RunState = iota
	Step
	Turbo
)

func (s RunState) String() string {
	switch s {
	case Off:
		return "OFF"
	case Step:
		return "STEP"
	case Turbo:
		return "TURBO"
	default:
		return fmt.Sprintf("RunState(%d)", int32(s))
	}
}

// Control is the run controller's atomically-guarded state. The fetch loop
// reads it once per iteration; an interrupt handler running on a separate
// goroutine (or signal-delivery path) writes to it concurrently, so every
// access goes through sync/atomic rather than a plain field.
type Control struct {
	state atomic.Int32
}

// NewControl returns a controller initialized to Step, the machine's
// power-on run state.
func NewControl() *Control {
	c := &Control{}
	c.state.Store(int32(Step))

	return c
}

// Get returns the current run state.
func (c *Control) Get() RunState {
	return RunState(c.state.Load())
}

// set unconditionally stores a new state.
func (c *Control) set(s RunState) {
	c.state.Store(int32(s))
}

// Resume transitions to Turbo (the debugger's "continue" command).
func (c *Control) Resume() {
	c.set(Turbo)
}

// Pause transitions to Step, the state in which the debugger prompts before
// every fetch.
func (c *Control) Pause() {
	c.set(Step)
}

// Halt transitions unconditionally to Off. TRAP HALT and illegal-opcode
// termination both call this directly.
func (c *Control) Halt() {
	c.set(Off)
}

// Interrupt implements the console-interrupt transition table of §4.6: it
// drops exactly one level, Turbo to Step or Step to Off, and reports the
// state reached. Off is left unchanged; there is nothing below it to
// interrupt into.
func (c *Control) Interrupt() RunState {
	for {
		cur := RunState(c.state.Load())

		var next RunState

		switch cur {
		case Turbo:
			next = Step
		case Step:
			next = Off
		default:
			return cur
		}

		if c.state.CompareAndSwap(int32(cur), int32(next)) {
			return next
		}
	}
}
