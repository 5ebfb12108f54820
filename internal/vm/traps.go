package vm

// traps.go implements the six TRAP service routines (§4.8). Traps read
// directly from the machine's console probe rather than through the
// memory-mapped keyboard registers: GETC and IN perform a genuine blocking
// read, independent of whatever a program has or hasn't polled at KBSR.

import (
	"fmt"
)

// Trap vectors (§4.8).
const (
	TrapGETC  Word = 0x20
	TrapOUT   Word = 0x21
	TrapPUTS  Word = 0x22
	TrapIN    Word = 0x23
	TrapPUTSP Word = 0x24
	TrapHALT  Word = 0x25
)

// trap dispatches on vect, saving the return address first. An unrecognized
// vector is a warning, not a failure: it prints a diagnostic, touches no
// register, and execution continues (§4.8, §6, §8).
func (m *LC3) trap(vect Word) error {
	if _, known := trapHandlers[vect]; !known {
		fmt.Fprintf(m.Out, "invalid trap vector: %#02x\n", uint16(vect))
		return nil
	}

	m.Reg.GPR[RETP] = m.Reg.PC

	return trapHandlers[vect](m)
}

var trapHandlers = map[Word]func(*LC3) error{
	TrapGETC:  (*LC3).trapGETC,
	TrapOUT:   (*LC3).trapOUT,
	TrapPUTS:  (*LC3).trapPUTS,
	TrapIN:    (*LC3).trapIN,
	TrapPUTSP: (*LC3).trapPUTSP,
	TrapHALT:  (*LC3).trapHALT,
}

func (m *LC3) trapGETC() error {
	b, err := m.readByte()
	if err != nil {
		return fmt.Errorf("vm: TRAP GETC: %w", err)
	}

	value := Register(b)
	m.Reg.GPR[R0] = value
	m.Reg.COND.Set(value)

	return nil
}

func (m *LC3) trapOUT() error {
	_, err := m.Out.Write([]byte{byte(m.Reg.GPR[R0])})
	if err != nil {
		return fmt.Errorf("vm: TRAP OUT: %w", err)
	}

	m.flush()

	return nil
}

// trapPUTS writes the low byte of each word starting at reg[R0] until a
// zero word or the end of the address space, whichever comes first. The
// bound at 0xFFFF resolves an unbounded walk in the design this machine is
// modeled on; see the design notes.
func (m *LC3) trapPUTS() error {
	addr := Word(m.Reg.GPR[R0])

	for {
		w := m.Mem.Read(addr)
		if w == 0 {
			break
		}

		if _, err := m.Out.Write([]byte{byte(w)}); err != nil {
			return fmt.Errorf("vm: TRAP PUTS: %w", err)
		}

		if addr == 0xFFFF {
			break
		}

		addr++
	}

	m.flush()

	return nil
}

func (m *LC3) trapIN() error {
	if _, err := fmt.Fprint(m.Out, "Enter a character: "); err != nil {
		return fmt.Errorf("vm: TRAP IN: %w", err)
	}

	b, err := m.readByte()
	if err != nil {
		return fmt.Errorf("vm: TRAP IN: %w", err)
	}

	if _, err := m.Out.Write([]byte{b}); err != nil {
		return fmt.Errorf("vm: TRAP IN: %w", err)
	}

	m.flush()

	value := Register(b)
	m.Reg.GPR[R0] = value
	m.Reg.COND.Set(value)

	return nil
}

// trapPUTSP writes two characters per word, low byte first, stopping at a
// zero word. A word's high byte is written only when it is non-zero (so an
// odd-length string's final word contributes only its low byte). The 0xFFFF
// bound mirrors trapPUTS.
func (m *LC3) trapPUTSP() error {
	addr := Word(m.Reg.GPR[R0])

	for {
		w := m.Mem.Read(addr)
		if w == 0 {
			break
		}

		lo := byte(w & 0xFF)
		if _, err := m.Out.Write([]byte{lo}); err != nil {
			return fmt.Errorf("vm: TRAP PUTSP: %w", err)
		}

		hi := byte(w >> 8)
		if hi != 0 {
			if _, err := m.Out.Write([]byte{hi}); err != nil {
				return fmt.Errorf("vm: TRAP PUTSP: %w", err)
			}
		}

		if addr == 0xFFFF {
			break
		}

		addr++
	}

	m.flush()

	return nil
}

func (m *LC3) trapHALT() error {
	if _, err := fmt.Fprint(m.Out, "HALT\n"); err != nil {
		return fmt.Errorf("vm: TRAP HALT: %w", err)
	}

	m.flush()
	m.State.Halt()

	return nil
}

// readByte performs a genuine blocking read of one byte from the console,
// bypassing the memory-mapped KBSR/KBDR synthesis in Memory.
func (m *LC3) readByte() (byte, error) {
	if m.Kbd == nil {
		return 0, fmt.Errorf("vm: no console attached")
	}

	return m.Kbd.ReadByte()
}

// flush drains any buffered writer so output appears promptly, matching the
// "flush at end" requirement of every output trap (§4.8). Writers that
// aren't buffered are left alone.
func (m *LC3) flush() {
	type flusher interface{ Flush() error }

	if f, ok := m.Out.(flusher); ok {
		_ = f.Flush()
	}
}
