package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// usageError reports an invocation problem. It is printed to stdout and the
// process still exits 0, matching the behaviour operators script against.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(newRootCommand().ExecuteContext(ctx), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(stdout, usage.msg)
		return 0
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	return 1
}
