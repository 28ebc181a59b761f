package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/metinatakli/esim-marketplace/internal/vcs"
	"github.com/spf13/cobra"
)

const (
	exitOK              = 0
	exitError           = 1
	exitStillProcessing = 2
)

// exitCodeError carries a process exit code out of a command.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, "Error:", err)

	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		return codeErr.code
	}

	return exitError
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "esimctl",
		Short:         "Operator tooling for the eSIM marketplace API",
		Version:       vcs.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(iccidCmd())
	rootCmd.AddCommand(statusCmd())

	return rootCmd
}
