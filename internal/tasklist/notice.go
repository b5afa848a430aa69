package tasklist

// Notice messages, keyed by operation outcome.
const (
	MsgAdded      = "Task added successfully"
	MsgUpdated    = "Task updated successfully"
	MsgDeleted    = "Task deleted successfully"
	MsgEmptyTitle = "Task title cannot be empty"
)

// NoticeKind separates success notices from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

func (k NoticeKind) String() string {
	if k == NoticeError {
		return "error"
	}
	return "success"
}

// Notice is a transient, non-blocking message about an operation's outcome.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notifier receives notices as the controller emits them.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}
