// Command lc3vm loads one or more LC-3 object images and runs them under
// the single-step debugger, starting in single-step mode (§4.6).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/nwillis/lc3vm/internal/debugger"
	"github.com/nwillis/lc3vm/internal/log"
	"github.com/nwillis/lc3vm/internal/tty"
	"github.com/nwillis/lc3vm/internal/vm"
)

// Exit codes (§6).
const (
	exitOK        = 0
	exitUsage     = 2
	exitLoad      = 1
	exitResources = 71
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := log.DefaultLogger()

	fs := flag.NewFlagSet("lc3vm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var logLevel slog.Level

	fs.Func("loglevel", "set log `level` (debug, info, warn, error)", func(s string) error {
		return logLevel.UnmarshalText([]byte(s))
	})

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: lc3vm [-loglevel level] <image> [<image> ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	images := fs.Args()
	if len(images) == 0 {
		fs.Usage()
		return exitUsage
	}

	log.LogLevel.Set(logLevel)

	console, err := tty.NewConsole(os.Stdin)
	if err != nil {
		logger.Error("terminal initialization failed", "err", err)
		return exitResources
	}

	defer console.Restore()

	machine := vm.New()
	machine.SetConsole(console)

	loader := vm.NewLoader(machine)

	for _, path := range images {
		n, err := loader.LoadFile(path)
		if err != nil {
			logger.Error("load failed", "image", path, "err", err)
			return exitLoad
		}

		logger.Debug("loaded image", "image", path, "words", n)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		for range sigCh {
			machine.Interrupt()
		}
	}()

	defer signal.Stop(sigCh)

	lines := debugger.NewLineEditor(console)
	repl := debugger.New(machine, lines, os.Stdout)

	if err := repl.Run(); err != nil {
		logger.Error("run failed", "err", err)
		return exitLoad
	}

	return exitOK
}
