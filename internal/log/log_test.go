package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nwillis/lc3vm/internal/log"
)

func TestHandler_writesKeyValueBlocks(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.NewFormattedLogger(buf)

	logger.Info("fetched instruction", "opcode", "ADD", "pc", "0x3001")

	out := buf.String()

	for _, want := range []string{"LEVEL", "INFO", "MESSAGE", "fetched instruction", "OPCODE", "ADD", "PC", "0x3001"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestHandler_respectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.NewFormattedLogger(buf)

	prev := log.LogLevel.Level()
	log.LogLevel.Set(log.Warn)

	defer log.LogLevel.Set(prev)

	logger.Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected debug record to be suppressed, got %q", buf.String())
	}

	logger.Warn("should appear")

	if buf.Len() == 0 {
		t.Error("expected warn record to be written")
	}
}

func TestHandler_withAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.NewFormattedLogger(buf).With("component", "vm")

	logger.Info("ready")

	if got := buf.String(); !strings.Contains(got, "COMPONENT") || !strings.Contains(got, "vm") {
		t.Errorf("output %q missing attached attribute", got)
	}
}
