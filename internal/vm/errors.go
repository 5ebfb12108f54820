package vm

import "errors"

// Sentinel errors returned by the machine. Wrap these with fmt.Errorf's %w
// verb when adding context; callers match against them with errors.Is.
var (
	// ErrIllegalOpcode is returned by Cycle when the fetched instruction is
	// RTI or RES (§4.7). An unrecognized TRAP vector is not an error (§4.8).
	ErrIllegalOpcode = errors.New("vm: illegal opcode")

	// ErrLoader is returned by Load when an image file is malformed or
	// cannot be read (§4.4).
	ErrLoader = errors.New("vm: load failed")

	// ErrHalted is returned by Cycle after a TRAP HALT has stopped the
	// machine and Cycle is called again without a reset.
	ErrHalted = errors.New("vm: machine halted")
)
