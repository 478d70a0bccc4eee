package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/indaco/cargotag/internal/cli"
	"github.com/indaco/cargotag/internal/clix"
	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/git"
	"github.com/indaco/cargotag/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI builds the application and runs it with args.
func runCLI(args []string) error {
	return cli.New(clix.NewApp()).Run(context.Background(), args)
}

// reportError prints err, with advice for known git failures.
func reportError(w io.Writer, err error) {
	var hint string
	var suggestions []string
	if errors.Is(err, core.ErrGitOperation) {
		if info := git.DescribeError(err); info != nil {
			hint = info.Message
			suggestions = info.Suggestions
		}
	}
	printer.ErrorReport(w, err.Error(), hint, suggestions)
}
