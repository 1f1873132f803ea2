package exam

import (
	"context"
	"time"
)

// EventKind names a session state change.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventNavigate EventKind = "navigate"
	EventAnswer   EventKind = "answer"
	EventClear    EventKind = "clear"
	EventSubmit   EventKind = "submit"
)

// Event describes one session state change for a Recorder.
type Event struct {
	SessionID string
	ExamID    string
	ExamTitle string
	Kind      EventKind
	At        time.Time

	// Question is the 1-based display number the event concerns (0 if none).
	Question int
	Response string

	Remaining int
	Total     int
	Answered  int

	// Reason is set on submit events.
	Reason SubmitReason
}

// Recorder receives session events, typically to persist them.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}
