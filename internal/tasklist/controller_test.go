package tasklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/idilsaglam/tasklist/internal/model"
)

type recorder struct {
	notices []Notice
}

func (r *recorder) Notify(n Notice) { r.notices = append(r.notices, n) }

func (r *recorder) last(t *testing.T) Notice {
	t.Helper()
	if len(r.notices) == 0 {
		t.Fatal("expected a notice, got none")
	}
	return r.notices[len(r.notices)-1]
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newTestController() (*Controller, *recorder) {
	rec := &recorder{}
	return New(Options{Notifier: rec, NewID: seqIDs()}), rec
}

func mustAdd(t *testing.T, c *Controller, title, desc string) model.Task {
	t.Helper()
	if err := c.Add(model.Draft{Title: title, Description: desc}); err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	tasks := c.Tasks()
	return tasks[len(tasks)-1]
}

func TestAddAppendsTask(t *testing.T) {
	c, rec := newTestController()
	c.OpenAdd()

	got := mustAdd(t, c, "Buy milk", "")
	if c.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", c.Len())
	}
	want := model.Task{ID: "t1", Title: "Buy milk", Completed: false}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if n := rec.last(t); n.Kind != NoticeSuccess || n.Text != MsgAdded {
		t.Errorf("unexpected notice %+v", n)
	}
	if c.State() != FormClosed {
		t.Errorf("expected form closed, got %v", c.State())
	}
	if !c.Draft().IsZero() {
		t.Errorf("expected draft cleared, got %+v", c.Draft())
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c, _ := newTestController()
	for _, title := range []string{"a", "b", "c"} {
		mustAdd(t, c, title, "")
	}
	tasks := c.Tasks()
	for i, want := range []string{"a", "b", "c"} {
		if tasks[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, tasks[i].Title)
		}
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "  ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			c, rec := newTestController()
			c.OpenAdd()
			c.SetDraft(model.Draft{Title: title, Description: "kept"})

			err := c.Submit()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != "title" || ve.Error() != MsgEmptyTitle {
				t.Errorf("unexpected error %+v", ve)
			}
			if c.Len() != 0 {
				t.Errorf("expected empty list, got %d", c.Len())
			}
			if n := rec.last(t); n.Kind != NoticeError || n.Text != MsgEmptyTitle {
				t.Errorf("unexpected notice %+v", n)
			}
			// the form stays open with the draft intact
			if c.State() != FormAdd {
				t.Errorf("expected form to stay open, got %v", c.State())
			}
			if c.Draft().Description != "kept" {
				t.Errorf("draft was altered: %+v", c.Draft())
			}
		})
	}
}

func TestAddStoresTitleAsEntered(t *testing.T) {
	c, _ := newTestController()
	got := mustAdd(t, c, "  padded ", "desc")
	if got.Title != "  padded " || got.Description != "desc" {
		t.Errorf("fields changed on write: %+v", got)
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	c := New(Options{})
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		task := mustAdd(t, c, "x", "")
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggleCompletedRoundTrip(t *testing.T) {
	c, _ := newTestController()
	a := mustAdd(t, c, "a", "first")
	b := mustAdd(t, c, "b", "second")

	c.ToggleCompleted(a.ID)
	gotA, _ := c.Task(a.ID)
	if !gotA.Completed {
		t.Fatal("expected a to be completed")
	}
	gotA.Completed = false
	if gotA != a {
		t.Errorf("toggle changed other fields: %+v", gotA)
	}
	if gotB, _ := c.Task(b.ID); gotB != b {
		t.Errorf("toggle touched another task: %+v", gotB)
	}

	c.ToggleCompleted(a.ID)
	if gotA, _ := c.Task(a.ID); gotA != a {
		t.Errorf("double toggle did not restore task: %+v", gotA)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	c, _ := newTestController()
	a := mustAdd(t, c, "a", "")
	c.ToggleCompleted("missing")
	if got, _ := c.Task(a.ID); got != a {
		t.Errorf("unexpected change: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	c, rec := newTestController()
	a := mustAdd(t, c, "a", "")
	b := mustAdd(t, c, "b", "")
	d := mustAdd(t, c, "c", "")

	c.Delete(b.ID)
	tasks := c.Tasks()
	if len(tasks) != 2 || tasks[0] != a || tasks[1] != d {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}
	if n := rec.last(t); n.Text != MsgDeleted {
		t.Errorf("unexpected notice %+v", n)
	}

	c.Delete(b.ID)
	if c.Len() != 2 {
		t.Errorf("second delete changed size to %d", c.Len())
	}
	if n := rec.last(t); n.Kind != NoticeSuccess || n.Text != MsgDeleted {
		t.Errorf("expected delete notice on absent id, got %+v", n)
	}
}

func TestDeleteTaskUnderEditClosesForm(t *testing.T) {
	c, _ := newTestController()
	a := mustAdd(t, c, "a", "")
	c.Edit(a.ID)
	c.Delete(a.ID)
	if c.State() != FormClosed {
		t.Errorf("expected form closed, got %v", c.State())
	}
	if _, ok := c.Current(); ok {
		t.Error("expected no current task")
	}
}

func TestEditThenUpdate(t *testing.T) {
	c, rec := newTestController()
	a := mustAdd(t, c, "Buy milk", "2 litres")
	other := mustAdd(t, c, "Walk dog", "")
	c.ToggleCompleted(a.ID)

	c.Edit(a.ID)
	if c.State() != FormEdit {
		t.Fatalf("expected edit state, got %v", c.State())
	}
	if cur, ok := c.Current(); !ok || cur != a.ID {
		t.Fatalf("expected current %q, got %q", a.ID, cur)
	}
	if d := c.Draft(); d.Title != "Buy milk" || d.Description != "2 litres" {
		t.Fatalf("draft not loaded: %+v", d)
	}

	c.SetDraft(model.Draft{Title: "Buy bread", Description: "2 litres"})
	if err := c.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, _ := c.Task(a.ID)
	want := model.Task{ID: a.ID, Title: "Buy bread", Description: "2 litres", Completed: true}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if o, _ := c.Task(other.ID); o != other {
		t.Errorf("update touched another task: %+v", o)
	}
	if c.State() != FormClosed || !c.Draft().IsZero() {
		t.Errorf("form not reset: state=%v draft=%+v", c.State(), c.Draft())
	}
	if _, ok := c.Current(); ok {
		t.Error("current task not cleared")
	}
	if n := rec.last(t); n.Text != MsgUpdated {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	c, rec := newTestController()
	a := mustAdd(t, c, "a", "")
	c.Edit(a.ID)

	err := c.Update(model.Draft{Title: " "})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got, _ := c.Task(a.ID); got != a {
		t.Errorf("task changed: %+v", got)
	}
	if c.State() != FormEdit {
		t.Errorf("expected form to stay in edit, got %v", c.State())
	}
	if n := rec.last(t); n.Kind != NoticeError {
		t.Errorf("expected error notice, got %+v", n)
	}
}

func TestUpdateWithoutCurrentIsNoop(t *testing.T) {
	c, rec := newTestController()
	a := mustAdd(t, c, "a", "")
	before := len(rec.notices)

	if err := c.Update(model.Draft{Title: "b"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got, _ := c.Task(a.ID); got != a {
		t.Errorf("task changed: %+v", got)
	}
	if len(rec.notices) != before {
		t.Errorf("unexpected notices: %+v", rec.notices[before:])
	}
}

func TestEditUnknownIDIsNoop(t *testing.T) {
	c, _ := newTestController()
	c.Edit("missing")
	if c.State() != FormClosed {
		t.Errorf("expected closed, got %v", c.State())
	}
}

func TestFormTransitions(t *testing.T) {
	c, _ := newTestController()
	a := mustAdd(t, c, "a", "")

	c.OpenAdd()
	if c.State() != FormAdd {
		t.Fatalf("expected open-add, got %v", c.State())
	}
	c.SetDraft(model.Draft{Title: "half typed"})
	c.Cancel()
	if c.State() != FormClosed || !c.Draft().IsZero() {
		t.Fatalf("cancel did not reset: %v %+v", c.State(), c.Draft())
	}

	// edit is reachable from open-add
	c.OpenAdd()
	c.Edit(a.ID)
	if c.State() != FormEdit {
		t.Fatalf("expected open-edit, got %v", c.State())
	}
	// open-add while open keeps the edit
	c.OpenAdd()
	if c.State() != FormEdit {
		t.Fatalf("expected open-add to be ignored, got %v", c.State())
	}
	c.Cancel()
	if _, ok := c.Current(); ok {
		t.Error("cancel kept current task")
	}
	if err := c.Submit(); err != nil || c.Len() != 1 {
		t.Errorf("submit on closed form should be a no-op: err=%v len=%d", err, c.Len())
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	c, _ := newTestController()
	mustAdd(t, c, "a", "")
	tasks := c.Tasks()
	tasks[0].Title = "mutated"
	if got := c.Tasks()[0].Title; got != "a" {
		t.Errorf("collection aliased by caller: %q", got)
	}
}

func TestStats(t *testing.T) {
	c, _ := newTestController()
	a := mustAdd(t, c, "a", "")
	mustAdd(t, c, "b", "")
	mustAdd(t, c, "c", "")
	c.ToggleCompleted(a.ID)

	done, pending := c.Stats()
	if done != 1 || pending != 2 {
		t.Errorf("expected 1/2, got %d/%d", done, pending)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	c := New(Options{NewID: seqIDs()})
	if err := c.Add(model.Draft{Title: ""}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	mustAdd(t, c, "ok", "")
}

func TestNotifierFunc(t *testing.T) {
	var got []string
	c := New(Options{NewID: seqIDs(), Notifier: NotifierFunc(func(n Notice) {
		got = append(got, n.Kind.String()+":"+n.Text)
	})})
	c.Add(model.Draft{Title: " "})
	mustAdd(t, c, "x", "")
	want := []string{"error:" + MsgEmptyTitle, "success:" + MsgAdded}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
