package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/tasklist"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// usageError marks a malformed script line.
type usageError struct {
	line int
	msg  string
}

func (e *usageError) Error() string { return fmt.Sprintf("line %d: %s", e.line, e.msg) }

func doReplay(path string, opt Options) int {
	var r io.Reader
	if path == "-" {
		r = opt.Stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			ui.Fail("replay: " + err.Error())
			return 1
		}
		defer f.Close()
		r = f
	}

	ctrl := tasklist.New(tasklist.Options{Notifier: tasklist.NotifierFunc(printNotice)})
	if err := replay(ctrl, r, opt); err != nil {
		ui.Fail("replay: " + err.Error())
		var ue *usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func printNotice(n tasklist.Notice) {
	if n.Kind == tasklist.NoticeError {
		ui.Fail(n.Text)
		return
	}
	ui.OK(n.Text)
}

// replay applies each event line of r to ctrl in order.
func replay(ctrl *tasklist.Controller, r io.Reader, opt Options) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := apply(ctrl, n, line, opt); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return nil
}

func apply(ctrl *tasklist.Controller, n int, line string, opt Options) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "open":
		ctrl.OpenAdd()
	case "cancel":
		ctrl.Cancel()
	case "add":
		// validation failures surface as notices, not script errors
		_ = ctrl.Add(parseDraft(rest))
	case "update":
		_ = ctrl.Update(parseDraft(rest))
	case "edit", "toggle", "rm":
		id, err := taskAt(ctrl, n, verb, rest)
		if err != nil {
			return err
		}
		switch verb {
		case "edit":
			ctrl.Edit(id)
		case "toggle":
			ctrl.ToggleCompleted(id)
			ui.OK("toggled")
		case "rm":
			ctrl.Delete(id)
		}
	case "ls":
		printList(ctrl, opt)
	default:
		return &usageError{line: n, msg: "unknown event: " + verb}
	}
	return nil
}

// parseDraft splits "title | description".
func parseDraft(s string) model.Draft {
	title, desc, _ := strings.Cut(s, "|")
	return model.Draft{Title: strings.TrimSpace(title), Description: strings.TrimSpace(desc)}
}

// taskAt resolves a 1-based position to a task id.
func taskAt(ctrl *tasklist.Controller, n int, verb, arg string) (string, error) {
	if arg == "" {
		return "", &usageError{line: n, msg: "usage: " + verb + " <index>"}
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return "", &usageError{line: n, msg: verb + ": not a number: " + arg}
	}
	tasks := ctrl.Tasks()
	if i < 1 || i > len(tasks) {
		return "", &usageError{line: n, msg: fmt.Sprintf("index out of range: have %d, got %d", len(tasks), i)}
	}
	return tasks[i-1].ID, nil
}

// -------------- rendering helpers --------------

func printList(ctrl *tasklist.Controller, opt Options) {
	tasks := ctrl.Tasks()
	d, p := ctrl.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Tasks"),
		ui.C(ui.Current().Success, "✔"), d,
		ui.C(ui.Current().Pending, "•"), p,
		ui.C(ui.Current().Accent, "Total"), len(tasks),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	ui.Panel(lines)
}

func flatLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.C(ui.Current().Muted, "no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		idx := fmt.Sprintf("%2d.", i+1)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		title := t.Title
		if t.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
			title = ui.C(ui.Current().Done, title)
		}
		line := fmt.Sprintf("%s %s %s", ui.C(ui.Current().Muted, idx), ui.C(color, box), title)
		if t.Description != "" {
			line += ui.C(ui.Current().Muted, " · "+oneLine(t.Description, 60))
		}
		out = append(out, line)
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return s
}
