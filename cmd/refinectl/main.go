package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/refinectl/refinectl/internal/cli"
	internalconfig "github.com/refinectl/refinectl/internal/config"
	telemetryinit "github.com/refinectl/refinectl/internal/telemetry"
)

// Exit codes aligned with the CLI contract.
const (
	exitCodeFailure     = 1
	exitCodeNotFound    = 2
	exitCodeParse       = 3
	exitCodeStructure   = 4
	exitCodeEmptyConfig = 5
)

var (
	telemetrySetup = telemetryinit.Setup
	rootCommand    = cli.NewRootCommand
	osExit         = os.Exit
)

func main() {
	ctx := context.Background()
	shutdown, err := telemetrySetup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
	}
	if shutdown != nil {
		defer func() {
			cleanupCtx, cancel := context.WithTimeout(ctx, telemetryinit.ShutdownTimeout)
			defer cancel()
			if err := shutdown(cleanupCtx); err != nil {
				fmt.Fprintf(os.Stderr, "telemetry shutdown error: %v\n", err)
			}
		}()
	}

	cmd := rootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, internalconfig.ErrNotFound):
		return exitCodeNotFound
	case errors.Is(err, internalconfig.ErrParse):
		return exitCodeParse
	case errors.Is(err, internalconfig.ErrStructure):
		return exitCodeStructure
	case errors.Is(err, internalconfig.ErrEmptyConfig):
		return exitCodeEmptyConfig
	default:
		return exitCodeFailure
	}
}
