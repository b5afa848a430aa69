package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/tui"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool          // list grouped by pending/done
	Config config.Config // loaded settings
	Stdin  io.Reader     // replay source for "-"; os.Stdin when nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		return doUI(opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		if len(a) != 0 {
			ui.Fail("usage: tasklist ui")
			return 2
		}
		return doUI(opt)

	case "replay":
		if len(a) != 1 {
			ui.Fail("usage: tasklist replay <file|->")
			return 2
		}
		return doReplay(a[0], opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tasklist - a tiny in-memory task list

Usage:
  tasklist [flags] [subcommand] [args]

Subcommands:
  ui                 Interactive task list (default)
  replay <file|->    Apply task events from a file or stdin
  help               Show this help

Replay events (one per line, # starts a comment):
  add <title> [| <description>]
  edit <index>
  update <title> [| <description>]
  toggle <index>
  rm <index>
  open | cancel | ls

Flags:
  -group             group replay listings by pending/done
  -theme <name>      classic, neon or mono

Examples:
  tasklist
  printf 'add Buy milk\nls\n' | tasklist replay -
`)
}

// -------------- subcommand impls ----------------

func doUI(opt Options) int {
	closeLog, err := setupLog(opt.Config.Log.File)
	if err != nil {
		ui.Fail("log: " + err.Error())
		return 1
	}
	defer closeLog()

	log.Printf("starting ui (theme=%s alt_screen=%t)", opt.Config.UI.Theme, opt.Config.UI.AltScreen)
	err = tui.Run(tui.Options{
		AltScreen: opt.Config.UI.AltScreen,
		NoticeTTL: opt.Config.UI.NoticeTTL,
	})
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// setupLog sends the standard logger to path, or discards it when path is
// empty so nothing is written over the terminal UI.
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "tasklist")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
