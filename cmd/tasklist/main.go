package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group replay listings by pending/done")
	theme := flag.String("theme", "", "color theme: classic, neon or mono (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
		if err := cfg.Validate(); err != nil {
			ui.Fail(err.Error())
			os.Exit(2)
		}
	}
	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Group:  *groupPending,
		Config: cfg,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
