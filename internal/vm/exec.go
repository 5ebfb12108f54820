package vm

// exec.go implements the fetch/decode/execute cycle (§4.7).

// Cycle fetches the instruction at PC, advances PC past it, decodes it, and
// executes it against m. It returns a one-line trace of the instruction
// that ran.
//
// An illegal opcode (RTI, RES, or any other undefined pattern) is reported
// through the returned error and leaves the machine's state untouched
// beyond the fetch; the run controller transitions to Off when the caller
// observes this error (§4.7, §6). An unrecognized TRAP vector, by contrast,
// is not an error: Cycle returns nil and the diagnostic has already been
// written to Out.
//
// Calling Cycle after TRAP HALT has already turned the run state Off
// returns ErrHalted instead of fetching: the machine does not resume
// execution from wherever PC was left without an explicit reset.
func (m *LC3) Cycle() (string, error) {
	if m.State.Get() == Off {
		return "", ErrHalted
	}

	word := m.Mem.Read(Word(m.Reg.PC))
	m.Reg.PC++

	m.IR = Instruction(word)
	op := decode(m.IR)

	if err := op.Execute(m); err != nil {
		return op.String(), err
	}

	return op.String(), nil
}
