package debugger

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nwillis/lc3vm/internal/vm"
)

// scriptedLines replays a fixed sequence of commands, then returns io.EOF.
type scriptedLines struct {
	lines []string
	i     int
}

func (s *scriptedLines) ReadLine() (string, error) {
	if s.i >= len(s.lines) {
		return "", io.EOF
	}

	line := s.lines[s.i]
	s.i++

	return line, nil
}

func TestDebugger_continueRunsToHalt(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	// AND R0,R0,#0; ADD R0,R0,#7; TRAP OUT; TRAP HALT
	prog := []vm.Word{0x5020, 0x1027, 0xF021, 0xF025}
	for i, w := range prog {
		m.Mem.Write(vm.Word(m.Reg.PC)+vm.Word(i), w)
	}

	lines := &scriptedLines{lines: []string{"c"}}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if m.Reg.GPR[vm.R0] != 7 {
		t.Errorf("R0 = %s, want 7", m.Reg.GPR[vm.R0])
	}

	if m.State.Get() != vm.Off {
		t.Errorf("state = %s, want OFF", m.State.Get())
	}
}

func TestDebugger_printsFetchBannerBeforePrompt(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	pc := m.Reg.PC
	m.Mem.Write(vm.Word(pc), 0xF025) // TRAP HALT

	lines := &scriptedLines{lines: []string{"s"}}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	want := pc.String() + ": " + vm.Word(0xF025).String()
	if !strings.Contains(out.String(), want) {
		t.Errorf("output %q missing fetch banner %q", out.String(), want)
	}
}

func TestDebugger_infoCommandsDontAdvance(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	m.Mem.Write(vm.Word(m.Reg.PC), 0xF025) // TRAP HALT

	lines := &scriptedLines{lines: []string{"help", "reg", "memory 0x3000", "s"}}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if !strings.Contains(out.String(), "commands:") {
		t.Error("expected help text in output")
	}

	if !strings.Contains(out.String(), "PC:") {
		t.Error("expected register dump in output")
	}

	if m.State.Get() != vm.Off {
		t.Errorf("state = %s, want OFF", m.State.Get())
	}
}

func TestDebugger_eofQuits(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	lines := &scriptedLines{}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if m.State.Get() != vm.Off {
		t.Errorf("state = %s, want OFF", m.State.Get())
	}
}

func TestDebugger_illegalOpcodeHalts(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	m.Mem.Write(vm.Word(m.Reg.PC), 0xD000) // RES

	lines := &scriptedLines{lines: []string{"s"}}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if m.State.Get() != vm.Off {
		t.Errorf("state = %s, want OFF", m.State.Get())
	}

	if !strings.Contains(out.String(), "illegal opcode") {
		t.Error("expected illegal-opcode diagnostic in output")
	}
}

func TestDebugger_unrecognizedCommand(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	m.Mem.Write(vm.Word(m.Reg.PC), 0xF025)

	lines := &scriptedLines{lines: []string{"xyzzy", "s"}}
	d := New(m, lines, out)

	if err := d.Run(); err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if !strings.Contains(out.String(), "unrecognized command") {
		t.Error("expected an unrecognized-command diagnostic")
	}
}

func TestDebugger_propagatesLineReaderError(t *testing.T) {
	m := vm.New()
	out := &bytes.Buffer{}
	m.Out = out

	want := errors.New("boom")
	d := New(m, &erroringLines{err: want}, out)

	err := d.Run()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Run() err = %v, want it to wrap %v", err, want)
	}
}

type erroringLines struct{ err error }

func (e *erroringLines) ReadLine() (string, error) { return "", e.err }
