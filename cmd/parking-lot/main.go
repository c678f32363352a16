package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Animesh-Ghosh/parking-lot/internal/dispatch"
	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
	"github.com/Animesh-Ghosh/parking-lot/internal/parking"
)

const (
	exitSuccess         = 0
	exitGeneralError    = 1
	exitDispatchError   = 2
	exitInvalidArgument = 3
	exitFileNotFound    = 4
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.shutdown()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if a.ready {
			logging.Error(ctx, "parking-lot failed", "error", err)
		} else {
			fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, dispatch.ErrUnknownCommand):
		return exitDispatchError
	case errors.Is(err, parking.ErrInvalidArgument), errors.Is(err, parking.ErrNotCreated):
		return exitInvalidArgument
	case errors.Is(err, os.ErrNotExist):
		return exitFileNotFound
	default:
		return exitGeneralError
	}
}

func (a *app) shutdown() {
	if a.telemetry == nil {
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := a.telemetry.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Warn("shutting down telemetry", "error", err)
	}
}
