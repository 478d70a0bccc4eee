// Package clix holds the state shared by the commands of one CLI invocation
// and the helpers that turn flags and configuration into release options.
package clix

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/indaco/cargotag/internal/cliflags"
	"github.com/indaco/cargotag/internal/config"
	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/git"
	"github.com/indaco/cargotag/internal/logging"
	"github.com/indaco/cargotag/internal/release"
)

// App carries dependencies and per-run state across commands.
type App struct {
	FS   core.FileSystem
	Open release.Opener
	Out  io.Writer

	// Set by Prepare.
	Verbosity int
	StartPath string
	Config    *config.Config
	Logger    *logging.Logger
}

// NewApp creates an App backed by the OS filesystem, go-git and stdout.
func NewApp() *App {
	return &App{
		FS:     core.NewOSFileSystem(),
		Open:   GitOpener(nil),
		Out:    os.Stdout,
		Logger: logging.Nop(),
	}
}

// GitOpener adapts git.Open to release.Opener. A nil provider means the
// system credential lookup.
func GitOpener(creds git.CredentialProvider) release.Opener {
	return func(root, remoteName string) (release.Repository, error) {
		repo, err := git.Open(root, git.OpenOptions{RemoteName: remoteName, Credentials: creds})
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// Prepare resolves the start path, sets up logging and loads the
// configuration. It runs before any command action. The configuration is
// not validated here so that doctor can report every problem.
func (a *App) Prepare(ctx context.Context, cmd *cli.Command) error {
	a.Logger = logging.New(logging.Options{
		Verbosity: a.Verbosity,
		NoColor:   cmd.Bool(cliflags.NoColor),
	})

	start, err := ResolveStartPath(ctx, a.FS, cmd.String(cliflags.Path))
	if err != nil {
		return err
	}
	a.StartPath = start
	a.Logger.Info().Str("path", start).Msg("using path")

	cfg, err := config.NewLoader(a.FS).Load(ctx, cmd.String(cliflags.Config), start)
	if err != nil {
		return err
	}
	if src := cfg.Source(); src != "" {
		a.Logger.Info().Str("file", src).Msg("loaded configuration")
	}
	a.Config = cfg
	return nil
}

// ResolveStartPath makes p absolute and replaces a file path with its
// directory. A missing path or one that is not a directory fails with
// core.ErrPath.
func ResolveStartPath(ctx context.Context, fs core.FileSystem, p string) (string, error) {
	if p == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrPath, p, err)
	}

	info, err := fs.Stat(ctx, abs)
	if err != nil {
		return "", fmt.Errorf("%w: path does not exist (%s)", core.ErrPath, abs)
	}
	if info.Mode().IsRegular() {
		abs = filepath.Dir(abs)
		if info, err = fs.Stat(ctx, abs); err != nil {
			return "", fmt.Errorf("%w: path does not exist (%s)", core.ErrPath, abs)
		}
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: path is not a directory (%s)", core.ErrPath, abs)
	}
	return abs, nil
}

// EffectiveConfig returns a copy of the loaded configuration with the
// explicitly set flags applied on top.
func (a *App) EffectiveConfig(cmd *cli.Command) *config.Config {
	cfg := config.Default()
	if a.Config != nil {
		c := *a.Config
		cfg = &c
	}

	if cmd.IsSet(cliflags.ScanSubdirs) {
		cfg.ScanSubdirs = cmd.Bool(cliflags.ScanSubdirs)
	}
	if cmd.IsSet(cliflags.Selector) {
		cfg.Selector = cmd.String(cliflags.Selector)
	}
	if cmd.IsSet(cliflags.Remote) {
		cfg.Remote = cmd.String(cliflags.Remote)
	}
	if cmd.IsSet(cliflags.TagPrefix) {
		cfg.TagPrefix = cmd.String(cliflags.TagPrefix)
	}
	return cfg
}

// ReleaseOptions validates the loaded configuration and builds the release
// options from it and the flags. Flags win only when explicitly set.
func (a *App) ReleaseOptions(cmd *cli.Command) (release.Options, error) {
	if a.Config != nil {
		if err := a.Config.Validate(); err != nil {
			return release.Options{}, err
		}
	}
	cfg := a.EffectiveConfig(cmd)

	sel, err := discovery.ParseSelector(cfg.Selector)
	if err != nil {
		return release.Options{}, fmt.Errorf("%w: %w", core.ErrSelection, err)
	}

	opts := release.Options{
		Path:          a.StartPath,
		ScanSubdirs:   cfg.ScanSubdirs,
		Selector:      sel,
		ManifestNames: cfg.Manifests,
		Exclude:       cfg.Exclude,
		TagPrefix:     cfg.TagPrefix,
		TagMessage:    cmd.String(cliflags.TagMessage),
		RemoteName:    cfg.Remote,
		DoPush:        cmd.Bool(cliflags.DoPush),
	}
	if opts.TagMessage == "" {
		return release.Options{}, fmt.Errorf("required flag %q not set", cliflags.TagMessage)
	}
	return opts, nil
}
