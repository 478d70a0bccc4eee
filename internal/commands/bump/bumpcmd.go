// Package bump provides the release commands: fixed, increment and only-show.
package bump

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/indaco/cargotag/internal/clix"
	"github.com/indaco/cargotag/internal/printer"
	"github.com/indaco/cargotag/internal/release"
	"github.com/indaco/cargotag/internal/semver"
)

// Commands returns the release commands.
func Commands(app *clix.App) []*cli.Command {
	return []*cli.Command{
		fixedCmd(app),
		incrementCmd(app),
		onlyShowCmd(app),
	}
}

func fixedCmd(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "fixed",
		Usage:     "Set a literal version in the manifest(s), then commit, tag and push",
		UsageText: "cargotag -t <message> fixed <full_version>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one version argument, got %d", cmd.Args().Len())
			}
			return runRelease(ctx, cmd, app, func(o *release.Options) {
				o.Mode = release.ModeFixed
				o.FixedVersion = cmd.Args().First()
			})
		},
	}
}

func incrementCmd(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "increment",
		Usage:     "Increment the current version, then commit, tag and push",
		UsageText: "cargotag -t <message> increment <patch|minor|major>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one part argument (patch, minor or major), got %d", cmd.Args().Len())
			}
			part, err := semver.ParsePart(cmd.Args().First())
			if err != nil {
				return err
			}
			return runRelease(ctx, cmd, app, func(o *release.Options) {
				o.Mode = release.ModeIncrement
				o.Part = part
			})
		},
	}
}

func onlyShowCmd(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "only-show",
		Usage:     "Show the current version (not implemented yet)",
		UsageText: "cargotag -t <message> only-show",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRelease(ctx, cmd, app, func(o *release.Options) {
				o.Mode = release.ModeOnlyShow
			})
		},
	}
}

// runRelease builds the options from flags and configuration, applies the
// mode and runs the release with step output on app.Out.
func runRelease(ctx context.Context, cmd *cli.Command, app *clix.App, mode func(*release.Options)) error {
	opts, err := app.ReleaseOptions(cmd)
	if err != nil {
		return err
	}
	mode(&opts)

	rep := &stepReporter{p: printer.NewStepPrinter(app.Out, release.TotalSteps)}
	r := release.New(app.FS, app.Open,
		release.WithReporter(rep),
		release.WithLogger(app.Logger),
	)

	res, err := r.Run(ctx, opts)
	if err != nil {
		reportPartial(app, res)
		return err
	}

	fmt.Fprintln(app.Out, printer.Success(fmt.Sprintf("Released %s (%s -> %s)", res.Tag, res.OldVersion, res.NewVersion)))
	return nil
}

// reportPartial tells the user which side effects stay in place after a
// failure past the preflight checks.
func reportPartial(app *clix.App, res *release.Result) {
	if res == nil || res.Stage < release.StagePreflightChecked {
		return
	}
	var kept string
	switch {
	case res.Stage >= release.StageTagged:
		kept = fmt.Sprintf("manifests written, commit %s and tag %s created locally", shortHash(res.Commit), res.Tag)
	case res.Stage >= release.StageCommitted:
		kept = fmt.Sprintf("manifests written and commit %s created locally", shortHash(res.Commit))
	case len(res.Written) > 0:
		kept = fmt.Sprintf("%d manifest(s) already written", len(res.Written))
	default:
		return
	}
	fmt.Fprintln(app.Out, printer.Warning(fmt.Sprintf("Stopped after stage %q: %s, nothing was rolled back", res.Stage, kept)))
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// stepReporter prints release progress with a printer.StepPrinter.
type stepReporter struct {
	p *printer.StepPrinter
}

func (s *stepReporter) Begin(step release.Step) { s.p.Begin(step.Number, step.Icon, step.Title) }
func (s *stepReporter) End(step release.Step)   { s.p.End(step.Title) }
func (s *stepReporter) Detail(format string, args ...any) {
	s.p.Detail(format, args...)
}
