// Package initialize provides the "init" command, which writes a starter
// .cargotag.yaml into the start directory.
package initialize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/indaco/cargotag/internal/clix"
	"github.com/indaco/cargotag/internal/config"
	"github.com/indaco/cargotag/internal/printer"
)

// Run returns the "init" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .cargotag.yaml from a template",
		UsageText: "cargotag [--path dir] init [--template name] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "template",
				Usage: fmt.Sprintf("Template to start from (%v)", config.TemplateNames()),
				Value: "crate",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(ctx, app, cmd.String("template"), cmd.Bool("force"))
		},
	}
}

func runInit(ctx context.Context, app *clix.App, templateName string, force bool) error {
	tmpl, err := config.GetTemplate(templateName)
	if err != nil {
		return err
	}

	path := filepath.Join(app.StartPath, config.DefaultFileName)
	if _, err := app.FS.Stat(ctx, path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := tmpl.Build()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.NewSaver(app.FS, nil).SaveTo(ctx, cfg, path); err != nil {
		return err
	}

	fmt.Fprintln(app.Out, printer.Success(fmt.Sprintf("Created %s from template %q (%s)", path, tmpl.Name, tmpl.Description)))
	return nil
}
