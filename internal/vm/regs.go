package vm

// regs.go holds the register file: eight general-purpose registers, the
// program counter, and the condition-code register (§4.3).

import (
	"fmt"
	"strings"
)

// Condition holds the sign of the last value written to a destination
// register. Exactly one bit is set once the machine has started executing.
type Condition uint8

// Condition flags. The values match the N/Z/P bit positions of the LC-3
// instruction set's BR opcode, bits 11..9.
const (
	ConditionPositive Condition = 1 << 0
	ConditionZero     Condition = 1 << 1
	ConditionNegative Condition = 1 << 2
)

// Set recomputes the condition code from the two's-complement sign of value,
// per §3: zero if value is 0, negative if its top bit is set, positive
// otherwise.
func (c *Condition) Set(value Register) {
	switch {
	case value == 0:
		*c = ConditionZero
	case int16(value) < 0:
		*c = ConditionNegative
	default:
		*c = ConditionPositive
	}
}

// Any reports whether any flag in sel is set in c. BR uses this to decide
// whether to branch.
func (c Condition) Any(sel Condition) bool {
	return c&sel != 0
}

func (c Condition) String() string {
	return fmt.Sprintf("%03b (N:%t Z:%t P:%t)", uint8(c),
		c&ConditionNegative != 0, c&ConditionZero != 0, c&ConditionPositive != 0)
}

// RegisterFile is the set of eight general-purpose registers.
type RegisterFile [NumGPR]Register

func (rf RegisterFile) String() string {
	var b strings.Builder

	for i := 0; i < len(rf)/2; i++ {
		fmt.Fprintf(&b, "R%d: %s\tR%d: %s\n", i, rf[i], i+len(rf)/2, rf[i+len(rf)/2])
	}

	return b.String()
}

// Registers is the complete visible register state: the general-purpose
// file, the program counter, and the condition-code register (§3).
type Registers struct {
	GPR  RegisterFile
	PC   Register
	COND Condition
}

// UserSpaceAddr is the conventional LC-3 origin for user programs and the
// program counter's reset value.
const UserSpaceAddr Word = 0x3000

// Reset restores the registers to their power-on values: PC at the
// conventional user-space origin and COND at Z.
func (r *Registers) Reset() {
	r.GPR = RegisterFile{}
	r.PC = Register(UserSpaceAddr)
	r.COND = ConditionZero
}
