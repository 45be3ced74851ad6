package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prowlers/logtracker/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return exitCode(newRootCommand().ExecuteContext(ctx), os.Stderr)
}

// exitCode reports err on stderr unless it was logged where it happened.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, app.ErrWatchFailed) {
		fmt.Fprintf(stderr, "logtracker: %v\n", err)
	}
	return 1
}
