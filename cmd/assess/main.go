// Package main provides the entry point of the breast cancer risk assessment tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/breast-cancer-risk-assessment/internal/cli"
)

func main() {
	// Cancel a running assessment on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.New(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
