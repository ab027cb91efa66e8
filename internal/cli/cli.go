package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/verup/internal/config"
	"github.com/indaco/verup/internal/core"
	"github.com/indaco/verup/internal/operations"
	"github.com/indaco/verup/internal/printer"
	"github.com/indaco/verup/internal/tui"
	"github.com/indaco/verup/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// helpTokens are the arguments that request usage.
var helpTokens = []string{"-h", "--help", "-help"}

// HelpRequested reports whether args, program name first, ask for help.
// Arguments after "--" are not inspected.
func HelpRequested(args []string) bool {
	if len(args) < 2 {
		return false
	}
	for _, arg := range args[1:] {
		if arg == "--" {
			return false
		}
		if slices.Contains(helpTokens, arg) {
			return true
		}
	}
	return false
}

// Run runs cmd with args. A help request takes priority over every other
// argument: usage is printed and the run succeeds even when the remaining
// arguments are invalid.
func Run(ctx context.Context, cmd *urfavecli.Command, args []string) error {
	if HelpRequested(args) {
		args = []string{args[0], "--help"}
	}
	return cmd.Run(ctx, args)
}

// New builds and returns the root CLI command. cfg carries the defaults,
// config file and environment values; flags are applied on top of it.
func New(cfg config.Config, fs core.FileSystem) *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "verup",
		Version:   fmt.Sprintf("v%s", version.GetVersion()),
		Usage:     "Bump the version of a package and propagate it to its files",
		UsageText: "verup [--flags] [bump]",
		Description: "bump is a dotted increment spec (\"1\" patch, \"1.0\" minor, \"1.0.0\" major)\n" +
			"or one of patch, minor, major. Files to update are listed under\n" +
			"extra.verup.files in the manifest.",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Only use a manifest whose \"name\" matches",
			},
			&urfavecli.StringFlag{
				Name:        "package",
				Aliases:     []string{"p"},
				Usage:       "Manifest file name",
				Value:       cfg.Package,
				DefaultText: config.DefaultPackage,
			},
			&urfavecli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to start the manifest search from",
			},
			&urfavecli.StringFlag{
				Name:        "bump",
				Aliases:     []string{"b"},
				Usage:       "Bump spec, overridden by the positional argument",
				Value:       cfg.Bump,
				DefaultText: config.DefaultBump,
			},
			&urfavecli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing files",
			},
			&urfavecli.BoolFlag{
				Name:  "confirm",
				Usage: "Ask before writing files",
			},
			&urfavecli.StringFlag{
				Name:  "theme",
				Usage: "Prompt theme (" + strings.Join(tui.ValidThemes, ", ") + ")",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cfg.NoColor || cmd.Bool("no-color"))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			runCfg, err := applyFlags(cfg, cmd)
			if err != nil {
				return err
			}
			if err := runCfg.Validate(); err != nil {
				return err
			}
			tui.SetTheme(runCfg.Theme)

			op := operations.NewBumpOperation(fs, runCfg, tui.PromptConfirmer{})
			_, err = op.Execute(ctx)
			return err
		},
	}
}

// applyFlags returns cfg with every flag the user set applied on top.
func applyFlags(cfg config.Config, cmd *urfavecli.Command) (config.Config, error) {
	var flags config.Config
	if cmd.IsSet("name") {
		flags.Name = cmd.String("name")
	}
	if cmd.IsSet("package") {
		flags.Package = cmd.String("package")
	}
	if cmd.IsSet("dir") {
		flags.Dir = cmd.String("dir")
	}
	if cmd.IsSet("bump") {
		flags.Bump = cmd.String("bump")
	}
	if cmd.IsSet("theme") {
		flags.Theme = cmd.String("theme")
	}
	flags.DryRun = cmd.Bool("dry-run")
	flags.Confirm = cmd.Bool("confirm")
	flags.NoColor = cmd.Bool("no-color")

	switch cmd.Args().Len() {
	case 0:
	case 1:
		flags.Bump = cmd.Args().First()
	default:
		return config.Config{}, fmt.Errorf("expected at most one bump argument, got %d", cmd.Args().Len())
	}

	return cfg.Merge(flags), nil
}
