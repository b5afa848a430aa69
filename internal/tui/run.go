package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Options tune the interactive program.
type Options struct {
	AltScreen bool
	NoticeTTL time.Duration
}

// Run starts the shell with the task page mounted and blocks until quit.
// Tasks live only as long as the program does.
func Run(opt Options) error {
	page := NewTaskPage(PageOptions{NoticeTTL: opt.NoticeTTL})

	var popts []tea.ProgramOption
	if opt.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	p := tea.NewProgram(NewShell(page), popts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
