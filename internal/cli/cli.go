package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/indaco/cargotag/internal/cliflags"
	"github.com/indaco/cargotag/internal/clix"
	"github.com/indaco/cargotag/internal/commands/bump"
	"github.com/indaco/cargotag/internal/commands/doctor"
	"github.com/indaco/cargotag/internal/commands/initialize"
	"github.com/indaco/cargotag/internal/printer"
	"github.com/indaco/cargotag/internal/version"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the cargotag cli.
func New(app *clix.App) *urfavecli.Command {
	// -v counts verbosity, so the version flag keeps only its long name.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	}

	commands := bump.Commands(app)
	commands = append(commands,
		initialize.Run(app),
		doctor.Run(app),
	)

	return &urfavecli.Command{
		Name:                   "cargotag",
		Version:                fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                  "Write a new version to Cargo.toml and commit, tag and push it",
		UsageText:              "cargotag [global options] -t <message> <fixed <version> | increment <part> | only-show>",
		EnableShellCompletion:  true,
		UseShortOptionHandling: true,
		Writer:                 app.Out,
		Flags:                  cliflags.GlobalFlags(&app.Verbosity),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool(cliflags.NoColor))
			return ctx, app.Prepare(ctx, cmd)
		},
		Commands: commands,
	}
}
