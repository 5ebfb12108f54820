package vm

// vm.go assembles the machine: registers, memory, console, run controller,
// and output sink, all owned by a single *LC3 passed by pointer rather than
// held in package-level state.

import (
	"io"
	"os"

	"github.com/nwillis/lc3vm/internal/log"
)

// LC3 is one instance of the machine. Callers construct one with New,
// attach a console via SetConsole, load an image, and drive it with Cycle.
type LC3 struct {
	Reg Registers
	Mem *Memory
	IR  Instruction

	// Kbd is consulted directly by the GETC and IN traps for a genuine
	// blocking read. Mem consults the same value for KBSR/KBDR synthesis;
	// SetConsole keeps the two in sync.
	Kbd KeyboardProbe

	// Out is where TRAP OUT/PUTS/PUTSP/IN/HALT write. Defaults to os.Stdout.
	Out io.Writer

	State *Control

	log *log.Logger
}

// New returns a machine with its registers reset, an empty address space,
// no console attached, and output directed to stdout.
func New() *LC3 {
	m := &LC3{
		Out:   os.Stdout,
		State: NewControl(),
		log:   log.DefaultLogger(),
	}
	m.Reg.Reset()
	m.Mem = NewMemory(nil)

	return m
}

// SetConsole attaches the console the machine reads keyboard input from. It
// is consulted both by Mem (for the KBSR/KBDR memory-mapped registers) and
// directly by the GETC/IN trap handlers.
func (m *LC3) SetConsole(kbd KeyboardProbe) {
	m.Kbd = kbd
	m.Mem.SetKeyboard(kbd)
}

// Interrupt delivers a console interrupt to the run controller (§4.6) and
// prints the notice the operator sees when the machine drops out of a
// run state.
func (m *LC3) Interrupt() {
	next := m.State.Interrupt()
	m.log.Info("console interrupt", "state", next)
}
