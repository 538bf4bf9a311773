package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/refinectl/refinectl/internal/cli"
	internalconfig "github.com/refinectl/refinectl/internal/config"
	telemetryinit "github.com/refinectl/refinectl/internal/telemetry"
)

type exitPanic struct{ code int }

func resetMainGlobals() {
	telemetrySetup = telemetryinit.Setup
	rootCommand = cli.NewRootCommand
	osExit = os.Exit
}

func TestMainInitializesAndShutsDownTelemetry(t *testing.T) {
	t.Cleanup(func() {
		resetMainGlobals()
		os.Args = []string{"refinectl"}
	})

	var setups, shutdowns int
	telemetrySetup = func(context.Context) (func(context.Context) error, error) {
		setups++
		return func(context.Context) error {
			shutdowns++
			return nil
		}, nil
	}
	rootCommand = func() *cobra.Command {
		return &cobra.Command{Run: func(cmd *cobra.Command, args []string) {}}
	}

	os.Args = []string{"refinectl"}
	main()

	if setups != 1 {
		t.Fatalf("expected telemetry setup once, got %d", setups)
	}
	if shutdowns != 1 {
		t.Fatalf("expected telemetry shutdown once, got %d", shutdowns)
	}
}

func TestMainContinuesWhenTelemetrySetupFails(t *testing.T) {
	t.Cleanup(func() {
		resetMainGlobals()
		os.Args = []string{"refinectl"}
	})

	telemetrySetup = func(context.Context) (func(context.Context) error, error) {
		return nil, errors.New("no collector")
	}
	var executed bool
	rootCommand = func() *cobra.Command {
		return &cobra.Command{Run: func(cmd *cobra.Command, args []string) { executed = true }}
	}

	os.Args = []string{"refinectl"}
	main()

	if !executed {
		t.Fatalf("expected root command to execute despite telemetry failure")
	}
}

func TestMainSuccess(t *testing.T) {
	t.Cleanup(func() {
		resetMainGlobals()
		os.Args = []string{"refinectl"}
	})

	var executed bool
	rootCommand = func() *cobra.Command {
		return &cobra.Command{Run: func(cmd *cobra.Command, args []string) { executed = true }}
	}
	osExit = func(code int) {
		panic(exitPanic{code})
	}

	os.Args = []string{"refinectl"}

	defer func() {
		if r := recover(); r != nil {
			if ep, ok := r.(exitPanic); ok {
				t.Fatalf("unexpected exit code %d", ep.code)
			}
			panic(r)
		}
	}()

	main()

	if !executed {
		t.Fatalf("expected root command to execute")
	}
}

func TestMainExitCodeForNotFound(t *testing.T) {
	t.Cleanup(func() {
		resetMainGlobals()
		os.Args = []string{"refinectl"}
	})

	rootCommand = func() *cobra.Command {
		return &cobra.Command{
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return fmt.Errorf("%w: config.toml", internalconfig.ErrNotFound)
			},
		}
	}

	var exitCode int
	osExit = func(code int) {
		panic(exitPanic{code: code})
	}

	os.Args = []string{"refinectl"}

	defer func() {
		if r := recover(); r != nil {
			if ep, ok := r.(exitPanic); ok {
				exitCode = ep.code
				if exitCode != exitCodeNotFound {
					t.Fatalf("expected exit code %d, got %d", exitCodeNotFound, exitCode)
				}
				return
			}
			panic(r)
		}
	}()

	main()
	t.Fatalf("expected main to exit via osExit")
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{internalconfig.ErrNotFound, exitCodeNotFound},
		{fmt.Errorf("%w: bad.toml: oops", internalconfig.ErrParse), exitCodeParse},
		{internalconfig.ErrStructure, exitCodeStructure},
		{internalconfig.ErrEmptyConfig, exitCodeEmptyConfig},
		{errors.New("anything else"), exitCodeFailure},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
