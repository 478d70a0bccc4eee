// Package doctor provides the "doctor" command, which checks the
// configuration, the manifests and the repository without changing anything.
package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/indaco/cargotag/internal/clix"
	"github.com/indaco/cargotag/internal/config"
	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/parser"
	"github.com/indaco/cargotag/internal/printer"
)

// Run returns the "doctor" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Check configuration, manifests and repository without releasing",
		UsageText: "cargotag [global options] doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx, app, app.EffectiveConfig(cmd))
		},
	}
}

// runDoctor checks cfg, the configuration merged with the global flags, so
// the report matches what a release with the same flags would do.
func runDoctor(ctx context.Context, app *clix.App, cfg *config.Config) error {
	out := app.Out
	failures := 0

	fmt.Fprintln(out, printer.Info("Configuration"))
	if src := cfg.Source(); src != "" {
		line(out, true, false, "loaded %s", src)
	} else {
		line(out, true, false, "no %s found, using defaults", config.DefaultFileName)
	}
	results := config.NewValidator(cfg).Validate()
	for _, r := range results {
		line(out, r.Passed, r.Warning, "%s: %s", r.Category, r.Message)
	}
	failures += config.ErrorCount(results)

	fmt.Fprintln(out, printer.Info("Manifests"))
	located, err := discovery.NewLocator(app.FS).Locate(ctx, app.StartPath, discovery.Options{
		ScanSubdirs:   cfg.ScanSubdirs,
		ManifestNames: cfg.Manifests,
		Exclude:       cfg.Exclude,
	})
	if err != nil {
		line(out, false, false, "%v", err)
		return fmt.Errorf("%d check(s) failed", failures+1)
	}
	line(out, true, false, "git base path: %s", located.RepoRoot)

	entries := parser.NewCollection()
	reader := parser.NewReader(app.FS)
	for _, path := range located.Manifests {
		e, err := reader.Read(ctx, path)
		if err != nil {
			line(out, false, false, "%v", err)
			failures++
			continue
		}
		if err := entries.Add(e); err != nil {
			line(out, false, false, "%v", err)
			failures++
			continue
		}
		line(out, true, false, "%s: %s", path, e.Version)
	}
	if mismatches := discovery.DetectMismatches(entries); len(mismatches) > 0 {
		for _, m := range mismatches {
			line(out, true, true, "%s has %s, first manifest has %s (increment with selector all will fail)", m.Source, m.ActualVersion, m.ExpectedVersion)
		}
	}
	if _, err := discovery.Select(located.Manifests, mustSelector(cfg.Selector)); err != nil {
		line(out, false, false, "%v", err)
		failures++
	}

	fmt.Fprintln(out, printer.Info("Repository"))
	repo, err := app.Open(located.RepoRoot, cfg.Remote)
	if err != nil {
		line(out, false, false, "%v", err)
		return fmt.Errorf("%d check(s) failed", failures+1)
	}
	if d, ok := repo.(repositoryDetails); ok {
		line(out, true, false, "remote: %s (%s)", repo.RemoteName(), d.RemoteURL())
		line(out, true, false, "identity: %s", d.Identity())
	} else {
		line(out, true, false, "remote: %s", repo.RemoteName())
	}

	if pending, err := repo.PendingChanges(); err != nil {
		line(out, false, false, "%v", err)
		failures++
	} else if pending > 0 {
		line(out, false, false, "%d uncommitted change(s), a release would abort", pending)
		failures++
	} else {
		line(out, true, false, "working tree clean")
	}

	if branch, err := repo.HeadRef(); err != nil {
		line(out, false, false, "%v", err)
		failures++
	} else {
		line(out, true, false, "branch: %s", branch)
	}

	if tags, err := repo.TagNames(cfg.TagPrefix + "*"); err != nil {
		line(out, false, false, "%v", err)
		failures++
	} else {
		line(out, true, false, "%d existing tag(s) matching %s*", len(tags), cfg.TagPrefix)
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Fprintln(out, printer.Success("Ready to release"))
	return nil
}

// repositoryDetails is implemented by repositories that know their remote
// URL and commit identity.
type repositoryDetails interface {
	RemoteURL() string
	Identity() string
}

func mustSelector(s string) discovery.Selector {
	sel, err := discovery.ParseSelector(s)
	if err != nil {
		return discovery.SelectorNone
	}
	return sel
}

func line(w io.Writer, passed, warning bool, format string, args ...any) {
	mark := printer.Success("✔")
	switch {
	case warning:
		mark = printer.Warning("!")
	case !passed:
		mark = printer.Error("✘")
	}
	fmt.Fprintf(w, "  %s %s\n", mark, fmt.Sprintf(format, args...))
}
