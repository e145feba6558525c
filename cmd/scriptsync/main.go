package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code.
// The root command silences cobra's own error printing, so errors are
// reported here; cancellation (Ctrl-C) fails silently.
func run() int {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
