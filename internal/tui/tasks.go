package tui

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/tasklist"
)

// DefaultNoticeTTL is how long a notice stays on screen when unset.
const DefaultNoticeTTL = 3 * time.Second

// taskItem adapts model.Task to bubbles/list.Item
type taskItem struct{ task model.Task }

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return i.task.Description }
func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Description }

// Custom delegate: checkbox + title, description muted underneath
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	title := it.task.Title
	if it.task.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s\n    %s", prefix, box, title, mutedStyle.Render(it.task.Description))
}

// noticeBoard receives controller notices. It is shared by pointer so copies
// of TaskPage made by the Bubble Tea loop see the same notice.
type noticeBoard struct {
	seq     int
	current *tasklist.Notice
}

func (b *noticeBoard) Notify(n tasklist.Notice) {
	b.seq++
	b.current = &n
}

type noticeExpiredMsg struct{ seq int }

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// PageOptions configure a TaskPage.
type PageOptions struct {
	NoticeTTL time.Duration
	NewID     func() string // task id generator; uuid when nil
}

// TaskPage lists tasks and hosts the add/edit form.
type TaskPage struct {
	ctrl  *tasklist.Controller
	board *noticeBoard
	ttl   time.Duration

	list  list.Model
	title textinput.Model
	desc  textarea.Model
	focus formField

	keys     pageKeys
	formKeys formKeys

	width, height int
}

// NewTaskPage builds the page and the controller it drives.
func NewTaskPage(opt PageOptions) TaskPage {
	board := &noticeBoard{}
	ttl := opt.NoticeTTL
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	p := TaskPage{
		ctrl:     tasklist.New(tasklist.Options{Notifier: board, NewID: opt.NewID}),
		board:    board,
		ttl:      ttl,
		keys:     newPageKeys(),
		formKeys: newFormKeys(),
	}

	l := list.New(nil, taskDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = p.keys.short
	l.AdditionalFullHelpKeys = p.keys.short
	p.list = l

	p.title = textinput.New()
	p.title.Prompt = "> "
	p.title.Placeholder = "What needs doing?"
	p.title.CharLimit = 200

	p.desc = textarea.New()
	p.desc.Placeholder = "Details (optional)"
	p.desc.ShowLineNumbers = false
	p.desc.SetHeight(4)
	p.desc.CharLimit = 2000

	p.refresh()
	return p
}

// Controller exposes the task controller the page drives.
func (p TaskPage) Controller() *tasklist.Controller { return p.ctrl }

// Notice returns the notice currently on screen.
func (p TaskPage) Notice() (tasklist.Notice, bool) {
	if p.board.current == nil {
		return tasklist.Notice{}, false
	}
	return *p.board.current, true
}

func (p TaskPage) Init() tea.Cmd { return nil }

func (p TaskPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.resize()
		return p, nil
	case noticeExpiredMsg:
		if msg.seq == p.board.seq {
			p.board.current = nil
		}
		return p, nil
	}

	before := p.board.seq
	var cmd tea.Cmd
	if p.ctrl.State() == tasklist.FormClosed {
		p, cmd = p.updateList(msg)
	} else {
		p, cmd = p.updateForm(msg)
	}
	if p.board.seq != before {
		cmd = tea.Batch(cmd, p.expireNotice(p.board.seq))
	}
	return p, cmd
}

func (p TaskPage) updateList(msg tea.Msg) (TaskPage, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	// while the filter prompt is active every key belongs to it
	if !isKey || p.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		p.list, cmd = p.list.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(km, p.keys.Quit):
		if km.Type == tea.KeyEsc && p.list.FilterState() == list.FilterApplied {
			break
		}
		return p, tea.Quit

	case key.Matches(km, p.keys.Add):
		p.ctrl.OpenAdd()
		return p, p.loadForm()

	case key.Matches(km, p.keys.Edit):
		if id, ok := p.selectedID(); ok {
			p.ctrl.Edit(id)
			return p, p.loadForm()
		}
		return p, nil

	case key.Matches(km, p.keys.Toggle):
		if id, ok := p.selectedID(); ok {
			p.ctrl.ToggleCompleted(id)
			log.Printf("task toggled: %s", id)
			return p, p.refresh()
		}
		return p, nil

	case key.Matches(km, p.keys.Delete):
		if id, ok := p.selectedID(); ok {
			p.ctrl.Delete(id)
			log.Printf("task deleted: %s", id)
			return p, p.refresh()
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p TaskPage) updateForm(msg tea.Msg) (TaskPage, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, p.formKeys.Cancel):
			p.ctrl.Cancel()
			p.blurForm()
			return p, nil

		case key.Matches(km, p.formKeys.Next):
			return p, p.switchFocus()

		case key.Matches(km, p.formKeys.Submit),
			key.Matches(km, p.formKeys.SubmitLine) && p.focus == fieldTitle:
			return p.submit()
		}
	}

	var cmd tea.Cmd
	if p.focus == fieldTitle {
		p.title, cmd = p.title.Update(msg)
	} else {
		p.desc, cmd = p.desc.Update(msg)
	}
	p.ctrl.SetDraft(model.Draft{Title: p.title.Value(), Description: p.desc.Value()})
	return p, cmd
}

func (p TaskPage) submit() (TaskPage, tea.Cmd) {
	editing, _ := p.ctrl.Current()
	p.ctrl.SetDraft(model.Draft{Title: p.title.Value(), Description: p.desc.Value()})
	if err := p.ctrl.Submit(); err != nil {
		// the notice already tells the user; keep the form open
		log.Printf("submit rejected: %v", err)
		return p, nil
	}
	p.blurForm()
	cmd := p.refresh()
	if editing == "" {
		tasks := p.ctrl.Tasks()
		p.list.Select(len(tasks) - 1)
		log.Printf("task added: %s", tasks[len(tasks)-1].ID)
	} else {
		log.Printf("task updated: %s", editing)
	}
	return p, cmd
}

// loadForm copies the controller draft into the inputs and focuses the title.
func (p *TaskPage) loadForm() tea.Cmd {
	d := p.ctrl.Draft()
	p.title.SetValue(d.Title)
	p.title.CursorEnd()
	p.desc.SetValue(d.Description)
	p.focus = fieldTitle
	p.desc.Blur()
	return p.title.Focus()
}

func (p *TaskPage) blurForm() {
	p.title.Blur()
	p.desc.Blur()
	p.title.SetValue("")
	p.desc.SetValue("")
	p.focus = fieldTitle
}

func (p *TaskPage) switchFocus() tea.Cmd {
	if p.focus == fieldTitle {
		p.focus = fieldDescription
		p.title.Blur()
		return p.desc.Focus()
	}
	p.focus = fieldTitle
	p.desc.Blur()
	return p.title.Focus()
}

// refresh rebuilds list items and the header from the controller.
func (p *TaskPage) refresh() tea.Cmd {
	tasks := p.ctrl.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	idx := p.list.Index()
	cmd := p.list.SetItems(items)
	if n := len(items); n > 0 && idx >= n {
		p.list.Select(n - 1)
	}

	done, pending := p.ctrl.Stats()
	p.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(tasks),
	)
	return cmd
}

func (p *TaskPage) resize() {
	// one line reserved for the notice
	p.list.SetSize(p.width, max(0, p.height-1))
	w := min(60, max(20, p.width-8))
	p.title.Width = w - 4
	p.desc.SetWidth(w)
}

func (p TaskPage) selectedID() (string, bool) {
	it, ok := p.list.SelectedItem().(taskItem)
	if !ok {
		return "", false
	}
	return it.task.ID, true
}

func (p TaskPage) expireNotice(seq int) tea.Cmd {
	return tea.Tick(p.ttl, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (p TaskPage) View() string {
	var body string
	if p.ctrl.State() == tasklist.FormClosed {
		if len(p.list.Items()) == 0 {
			body = p.list.Title + "\n\n" + mutedStyle.Render("no tasks yet. press a to add one")
		} else {
			body = p.list.View()
		}
	} else {
		body = p.formView()
		if p.width > 0 && p.height > 1 {
			body = lipgloss.Place(p.width, p.height-1, lipgloss.Center, lipgloss.Center, body)
		}
	}
	return body + "\n" + p.noticeView()
}

func (p TaskPage) formView() string {
	heading, action := "Add New Task", "Add"
	if p.ctrl.State() == tasklist.FormEdit {
		heading, action = "Edit Task", "Update"
	}
	hint := helpStyle.Render(strings.Join([]string{
		"tab next field",
		"enter/ctrl+s " + strings.ToLower(action),
		"esc cancel",
	}, " • "))
	return modalStyle.Render(strings.Join([]string{
		titleStyle.Render(heading),
		"",
		labelStyle.Render("Title"),
		p.title.View(),
		"",
		labelStyle.Render("Description"),
		p.desc.View(),
		"",
		hint,
	}, "\n"))
}

func (p TaskPage) noticeView() string {
	n, ok := p.Notice()
	if !ok {
		return ""
	}
	if n.Kind == tasklist.NoticeError {
		return errorStyle.Render("✖ " + n.Text)
	}
	return successStyle.Render("✔ " + n.Text)
}
