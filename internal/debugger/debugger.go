// Package debugger implements the single-step REPL: an operator prompt that
// inspects registers and memory between instruction fetches, and steps or
// resumes the machine on command.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nwillis/lc3vm/internal/log"
	"github.com/nwillis/lc3vm/internal/vm"
)

// LineReader is the prompted-input collaborator the REPL consumes.
// LineEditor implements it over a real terminal.
type LineReader interface {
	ReadLine() (string, error)
}

// Debugger drives the single-step REPL against one machine.
type Debugger struct {
	machine *vm.LC3
	lines   LineReader
	out     io.Writer
	log     *log.Logger
}

// New returns a Debugger that prompts via lines and prints to out.
func New(machine *vm.LC3, lines LineReader, out io.Writer) *Debugger {
	return &Debugger{machine: machine, lines: lines, out: out, log: log.DefaultLogger()}
}

// Run drives the machine to completion, entering the REPL before every
// fetch while the run state is Step, and executing instructions without
// interaction while Turbo (§4.6). It returns when the run state reaches
// Off, or on an unrecoverable error.
func (d *Debugger) Run() error {
	for d.machine.State.Get() != vm.Off {
		if d.machine.State.Get() == vm.Step {
			d.printFetchBanner()

			quit, err := d.prompt()
			if err != nil {
				return err
			}

			if quit {
				d.machine.State.Halt()
				return nil
			}
		}

		trace, err := d.machine.Cycle()

		d.log.Debug("fetched instruction", "op", trace)

		if err != nil {
			if errors.Is(err, vm.ErrIllegalOpcode) {
				fmt.Fprintf(d.out, "illegal opcode: %v\n", err)
				d.machine.State.Halt()

				return nil
			}

			return err
		}

		if d.machine.State.Get() == vm.Step {
			fmt.Fprintf(d.out, "%s\n", trace)
		}
	}

	return nil
}

// printFetchBanner prints the PC and the instruction word about to be
// fetched, on every REPL entry in single-step mode (§4.9). It peeks memory
// rather than calling Cycle, so the banner never advances PC or mutates the
// machine.
func (d *Debugger) printFetchBanner() {
	pc := d.machine.Reg.PC
	ir := d.machine.Mem.Read(vm.Word(pc))

	fmt.Fprintf(d.out, "%s: %s\n", pc, ir)
}

// prompt loops on info commands (help, registers, memory) until the
// operator issues a control-flow command (step, continue) or hits EOF,
// which quits the machine. It returns quit=true on EOF.
func (d *Debugger) prompt() (quit bool, err error) {
	for {
		fmt.Fprint(d.out, "(lc3vm) ")

		line, err := d.lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return true, nil
			}

			return false, fmt.Errorf("debugger: %w", err)
		}

		cmd := strings.Fields(line)
		if len(cmd) == 0 {
			continue
		}

		switch firstLetter(cmd[0]) {
		case 'h':
			d.help()
		case 'r':
			d.printRegisters()
		case 'm':
			d.printMemory(cmd[1:])
		case 's':
			return false, nil
		case 'c':
			d.machine.State.Resume()
			return false, nil
		default:
			fmt.Fprintf(d.out, "unrecognized command: %s\n", cmd[0])
		}
	}
}

func firstLetter(cmd string) byte {
	if cmd == "" {
		return 0
	}

	return cmd[0]
}

func (d *Debugger) help() {
	fmt.Fprint(d.out, `commands:
  h, help      show this text
  c, continue  run at full speed until halt, illegal opcode, or interrupt
  s, step      execute one instruction
  r, reg       print registers
  m, memory addr [count]   print count words (default 1) starting at addr
`)
}

func (d *Debugger) printRegisters() {
	fmt.Fprint(d.out, d.machine.Reg.GPR.String())
	fmt.Fprintf(d.out, "PC: %s\tCOND: %s\n", d.machine.Reg.PC, d.machine.Reg.COND)
}

func (d *Debugger) printMemory(args []string) {
	addr, count, err := parseMemoryArgs(args)
	if err != nil {
		fmt.Fprintf(d.out, "memory: %v\n", err)
		return
	}

	for i := 0; i < count; i++ {
		a := addr + vm.Word(i)
		fmt.Fprintf(d.out, "%s: %s\n", a, d.machine.Mem.Read(a))
	}
}

func parseMemoryArgs(args []string) (addr vm.Word, count int, err error) {
	if len(args) == 0 {
		return 0, 0, errors.New("usage: memory addr [count]")
	}

	a, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q: %w", args[0], err)
	}

	count = 1

	if len(args) > 1 {
		c, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad count %q: %w", args[1], err)
		}

		count = c
	}

	return vm.Word(a), count, nil
}
