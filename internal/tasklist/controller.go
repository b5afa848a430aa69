// Package tasklist holds the in-memory task collection together with the
// add/edit form state that stages changes to it.
package tasklist

import (
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/tasklist/internal/model"
)

// FormState is the state of the add/edit form.
type FormState int

const (
	FormClosed FormState = iota
	FormAdd
	FormEdit
)

func (s FormState) String() string {
	switch s {
	case FormAdd:
		return "open-add"
	case FormEdit:
		return "open-edit"
	default:
		return "closed"
	}
}

// Options configure a Controller. The zero value is usable.
type Options struct {
	Notifier Notifier      // receives notices; discarded when nil
	NewID    func() string // id generator; uuid.NewString when nil
}

// Controller owns the task collection and the draft form state.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Controller struct {
	tasks   []model.Task
	draft   model.Draft
	current string // id of the task under edit, "" in add mode
	state   FormState

	notifier Notifier
	newID    func() string
}

// New returns an empty controller with the form closed.
func New(opt Options) *Controller {
	c := &Controller{
		tasks:    []model.Task{},
		notifier: opt.Notifier,
		newID:    opt.NewID,
	}
	if c.notifier == nil {
		c.notifier = discard{}
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// ---------- form ----------

// OpenAdd opens the form in add mode with an empty draft.
// It does nothing while the form is already open.
func (c *Controller) OpenAdd() {
	if c.state != FormClosed {
		return
	}
	c.resetForm()
	c.state = FormAdd
}

// Edit loads the task with the given id into the draft and opens the form
// in edit mode. Unknown ids are ignored.
func (c *Controller) Edit(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.draft = model.DraftOf(c.tasks[i])
	c.current = id
	c.state = FormEdit
}

// Cancel closes the form and discards the draft.
func (c *Controller) Cancel() {
	c.resetForm()
}

// SetDraft replaces the staged draft.
func (c *Controller) SetDraft(d model.Draft) { c.draft = d }

// Draft returns the staged draft.
func (c *Controller) Draft() model.Draft { return c.draft }

// State returns the form state.
func (c *Controller) State() FormState { return c.state }

// Current returns the id of the task under edit.
func (c *Controller) Current() (string, bool) {
	return c.current, c.current != ""
}

// Submit commits the staged draft according to the form state.
func (c *Controller) Submit() error {
	switch c.state {
	case FormAdd:
		return c.Add(c.draft)
	case FormEdit:
		return c.Update(c.draft)
	}
	return nil
}

// ---------- mutations ----------

// Add appends a new task built from d.
func (c *Controller) Add(d model.Draft) error {
	if err := c.validate(d); err != nil {
		return err
	}
	c.tasks = append(c.tasks, model.Task{
		ID:          c.newID(),
		Title:       d.Title,
		Description: d.Description,
	})
	c.resetForm()
	c.notify(NoticeSuccess, MsgAdded)
	return nil
}

// Update applies d to the task under edit, leaving its id and completion
// flag untouched. It does nothing when no task is under edit.
func (c *Controller) Update(d model.Draft) error {
	if c.current == "" {
		return nil
	}
	if err := c.validate(d); err != nil {
		return err
	}
	if i := c.indexOf(c.current); i >= 0 {
		c.tasks[i].Title = d.Title
		c.tasks[i].Description = d.Description
	}
	c.resetForm()
	c.notify(NoticeSuccess, MsgUpdated)
	return nil
}

// Delete removes the task with the given id, if any.
func (c *Controller) Delete(id string) {
	out := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	// clear the tail so removed tasks are not retained
	for i := len(out); i < len(c.tasks); i++ {
		c.tasks[i] = model.Task{}
	}
	c.tasks = out
	if c.current != "" && c.current == id {
		c.resetForm()
	}
	c.notify(NoticeSuccess, MsgDeleted)
}

// ToggleCompleted flips the completion flag of the task with the given id.
func (c *Controller) ToggleCompleted(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.tasks[i].Completed = !c.tasks[i].Completed
	}
}

// ---------- queries ----------

// Tasks returns a copy of the collection in insertion order.
func (c *Controller) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task returns the task with the given id.
func (c *Controller) Task(id string) (model.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return model.Task{}, false
}

// Len returns the number of tasks.
func (c *Controller) Len() int { return len(c.tasks) }

// Stats counts completed and pending tasks.
func (c *Controller) Stats() (done, pending int) {
	for _, t := range c.tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// ---------- helpers ----------

func (c *Controller) validate(d model.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		c.notify(NoticeError, MsgEmptyTitle)
		return &ValidationError{Field: "title", Msg: MsgEmptyTitle}
	}
	return nil
}

func (c *Controller) resetForm() {
	c.draft = model.Draft{}
	c.current = ""
	c.state = FormClosed
}

func (c *Controller) indexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) notify(kind NoticeKind, text string) {
	c.notifier.Notify(Notice{Kind: kind, Text: text})
}
