// Package cliflags defines the global command-line flags shared by the
// release commands.
package cliflags

import (
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	Path        = "path"
	Selector    = "cargo-file-selector"
	ScanSubdirs = "scan-subdirs"
	DoPush      = "do-push"
	Verbose     = "verbose"
	TagMessage  = "tag-message"
	Remote      = "remote"
	TagPrefix   = "git-prefix-for-tag"
	NoColor     = "no-color"
	Config      = "config"
)

// GlobalFlags returns the root flags. The number of -v occurrences is
// stored in verbosity.
func GlobalFlags(verbosity *int) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        Path,
			Aliases:     []string{"p"},
			Usage:       "Start directory (a file path means its directory)",
			Value:       ".",
			DefaultText: "current directory",
		},
		&cli.StringFlag{
			Name:    Selector,
			Aliases: []string{"c"},
			Usage:   "Which manifest(s) to update when several are found: leaf, base or all",
		},
		&cli.BoolFlag{
			Name:    ScanSubdirs,
			Aliases: []string{"s"},
			Usage:   "Also collect manifests in subdirectories of the start path",
		},
		&cli.BoolFlag{
			Name:    DoPush,
			Aliases: []string{"d"},
			Usage:   "Push the commit and tag (accepted for compatibility, the push always runs)",
			Value:   true,
		},
		&cli.BoolFlag{
			Name:    Verbose,
			Aliases: []string{"v"},
			Usage:   "Verbose output, repeat for more detail (-vv)",
			Config:  cli.BoolConfig{Count: verbosity},
		},
		&cli.StringFlag{
			Name:    TagMessage,
			Aliases: []string{"t"},
			Usage:   "Message of the annotated release tag (required for releases)",
		},
		&cli.StringFlag{
			Name:        Remote,
			Aliases:     []string{"r"},
			Usage:       "Git remote to push to",
			DefaultText: "origin",
		},
		&cli.StringFlag{
			Name:        TagPrefix,
			Aliases:     []string{"g"},
			Usage:       "Prefix of the release tag",
			DefaultText: "v",
		},
		&cli.BoolFlag{
			Name:  NoColor,
			Usage: "Disable colored output",
		},
		&cli.StringFlag{
			Name:        Config,
			Usage:       "Path to the configuration file (overrides CARGOTAG_CONFIG)",
			DefaultText: ".cargotag.yaml in the start directory",
		},
	}
}
