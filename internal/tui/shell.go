package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand is the name shown in the shell header.
const Brand = "Todo App"

// Shell is the static application chrome: a header with the brand mark,
// navigation and a user menu, and a content slot holding the active page.
type Shell struct {
	page  tea.Model
	nav   []string
	user  string
	width int
}

// NewShell mounts page into the content slot.
func NewShell(page tea.Model, nav ...string) Shell {
	return Shell{page: page, nav: nav, user: "◉ Account"}
}

// Page returns the mounted page.
func (s Shell) Page() tea.Model { return s.page }

func (s Shell) Init() tea.Cmd { return s.page.Init() }

func (s Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		fw, fh := frameStyle.GetFrameSize()
		hh := lipgloss.Height(s.header(msg.Width - fw))
		msg = tea.WindowSizeMsg{Width: max(0, msg.Width-fw), Height: max(0, msg.Height-fh-hh)}
		var cmd tea.Cmd
		s.page, cmd = s.page.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.page, cmd = s.page.Update(msg)
	return s, cmd
}

func (s Shell) View() string {
	fw, _ := frameStyle.GetFrameSize()
	inner := s.width - fw
	return frameStyle.Render(s.header(inner) + "\n" + s.page.View())
}

// header lays out brand on the left, nav in the middle and the user
// menu on the right, spread across width when it is known.
func (s Shell) header(width int) string {
	brand := titleStyle.Render("▣ " + Brand)
	nav := mutedStyle.Render(strings.Join(s.nav, "  "))
	user := accentStyle.Render(s.user)

	gap := width - lipgloss.Width(brand) - lipgloss.Width(nav) - lipgloss.Width(user)
	if gap < 2 {
		gap = 2
	}
	left, right := gap/2, gap-gap/2
	line := brand + strings.Repeat(" ", left) + nav + strings.Repeat(" ", right) + user
	return headerStyle.Render(line)
}
