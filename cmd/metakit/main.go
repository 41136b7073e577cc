package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/metakit/internal/cli"
	"github.com/vvka-141/metakit/pkg/metakit"
)

func main() {
	// Recover from panics so the process exits with a stack trace and a known code
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(metakit.ExitPanic)
		}
	}()

	if os.Getenv("METAKIT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(metakit.ExitCodeForError(err))
	}
}
