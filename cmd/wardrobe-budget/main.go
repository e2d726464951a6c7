package main

import (
	"fmt"
	"os"

	"wardrobe-budget/internal/cli"
	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/config"
)

func main() {
	output.ResetProcessExitCode()

	if err := config.LoadDotEnv(os.Getenv(config.EnvEnvFile)); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(output.ExitCodeForErrorCode(output.ErrorCodeConfigError))
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		code := output.CurrentProcessExitCode()
		if code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}

	code := output.CurrentProcessExitCode()
	if code > 0 {
		os.Exit(code)
	}
}
