// Package main is the entry point for the changelint CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/thoreinstein/changelint/cmd/changelint/commands"
	"github.com/thoreinstein/changelint/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	// Validation failures have already been reported.
	if !errors.Is(err, errors.ErrValidationFailed) {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		if s := errors.SuggestionOf(err); s != "" {
			fmt.Fprintln(os.Stderr, s)
		}
	}
	os.Exit(errors.ExitCode(err))
}
