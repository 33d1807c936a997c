package main

import (
	"os"

	"github.com/heroku/color"
	"golang.org/x/term"

	"github.com/buildpacks/stager/cmd"
	"github.com/buildpacks/stager/internal/commands"
	"github.com/buildpacks/stager/pkg/logging"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable(true)
	}

	// create logger with defaults
	logger := logging.NewLogWithWriters(color.Stdout(), color.Stderr())

	rootCmd, err := cmd.NewStagerCommand(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if commands.IsSoftError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
