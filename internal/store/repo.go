package store

import (
	"context"
	"time"

	"github.com/abhisek/examdesk/internal/exam"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	ExamID string    // exact exam id match ("" = any)
	From   time.Time // started_at >= From
	To     time.Time // started_at <= To
}

// Attempt is the summary row of one exam session.
type Attempt struct {
	ID            string
	ExamID        string
	ExamTitle     string
	Total         int
	DurationSecs  int
	Status        exam.Status
	Reason        exam.SubmitReason
	Answered      int
	RemainingSecs int
	StartedAt     time.Time
	SubmittedAt   time.Time // zero while in progress
}

// UsedSecs is how much of the time limit the attempt spent.
func (a Attempt) UsedSecs() int {
	return max(a.DurationSecs-a.RemainingSecs, 0)
}

// AttemptEvent is one entry of an attempt's append-only log.
type AttemptEvent struct {
	Sequence      int64
	AttemptID     string
	Kind          exam.EventKind
	Question      int
	Response      string
	RemainingSecs int
	Answered      int
	Timestamp     time.Time
}

// AttemptRepo records session events and reads back attempt history.
type AttemptRepo interface {
	exam.Recorder

	// ListAttempts returns attempts, newest first.
	ListAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// AttemptEvents returns an attempt's events in sequence order.
	AttemptEvents(ctx context.Context, attemptID string) ([]AttemptEvent, error)

	// DeleteAttempts removes attempts and their events. An empty examID
	// matches every exam.
	DeleteAttempts(ctx context.Context, examID string) (int, error)
}
