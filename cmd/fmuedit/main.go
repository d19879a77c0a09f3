package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/simtoolkit/fmuedit/internal/cli"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(fmuedit.ExitPanic)
		}
	}()

	if os.Getenv("FMUEDIT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(fmuedit.ExitCodeForError(err))
	}
}
