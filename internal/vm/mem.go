package vm

// mem.go implements the 65,536-word address space and the two memory-mapped
// keyboard registers (§4.2, §4.5).

// KeyboardProbe is the console device a Memory consults when the running
// program polls KBSR or reads KBDR. [tty.Console] implements it; tests use a
// fake to drive scripted input without a real terminal.
type KeyboardProbe interface {
	// Ready reports whether a byte is available without consuming it.
	Ready() bool
	// ReadByte blocks until a byte is available and returns it.
	ReadByte() (byte, error)
}

// Memory-mapped register addresses (§4.2).
const (
	KBSR Word = 0xFE00 // keyboard status register
	KBDR Word = 0xFE02 // keyboard data register
)

// kbsrReady is the bit of KBSR that is set when a keystroke is pending.
const kbsrReady Word = 1 << 15

// Memory is the machine's flat 16-bit address space. A read of KBSR first
// refreshes the KBSR and KBDR cells from the attached keyboard probe; every
// other read, KBDR included, returns the stored cell.
type Memory struct {
	cells [1 << 16]Word
	kbd   KeyboardProbe
}

// NewMemory returns a zeroed address space that consults kbd for the
// keyboard device. kbd may be nil; in that case KBSR always reads not-ready
// and KBDR is never filled from input, so it reads whatever a program last
// wrote there (zero if nothing was).
func NewMemory(kbd KeyboardProbe) *Memory {
	return &Memory{kbd: kbd}
}

// SetKeyboard attaches or replaces the keyboard probe without disturbing
// backing storage.
func (m *Memory) SetKeyboard(kbd KeyboardProbe) {
	m.kbd = kbd
}

// Read returns the word at addr. Reading KBSR has a side effect (§4.5): it
// consults the keyboard probe and overwrites both KBSR and KBDR in cells to
// reflect the probe's current state before returning — KBSR to kbsrReady or
// 0, and, when a byte was consumed, KBDR to that byte. Reading KBDR has no
// side effect; it returns whatever was last stored there, by a program
// write or by a prior KBSR read.
func (m *Memory) Read(addr Word) Word {
	if addr == KBSR {
		if m.kbd != nil && m.kbd.Ready() {
			if b, err := m.kbd.ReadByte(); err == nil {
				m.cells[KBDR] = Word(b)
				m.cells[KBSR] = kbsrReady
			} else {
				m.cells[KBSR] = 0
			}
		} else {
			m.cells[KBSR] = 0
		}
	}

	return m.cells[addr]
}

// Write unconditionally stores value at addr, including the memory-mapped
// keyboard registers: a program write to KBSR or KBDR is visible to a
// subsequent read, until the next KBSR read overwrites it with the probe's
// state (§4.2, §4.5).
func (m *Memory) Write(addr Word, value Word) {
	m.cells[addr] = value
}
