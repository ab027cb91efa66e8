package main

import (
	"context"
	"os"

	"github.com/indaco/verup/internal/cli"
	"github.com/indaco/verup/internal/config"
	"github.com/indaco/verup/internal/core"
	"github.com/indaco/verup/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command with args.
// A help request is served even when the config file is broken.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		if !cli.HelpRequested(args) {
			return err
		}
		cfg = config.Default()
	}

	app := cli.New(cfg, core.NewOSFileSystem())
	return cli.Run(context.Background(), app, args)
}
