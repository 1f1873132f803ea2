package exam

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examdesk/internal/countdown"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

// SubmitReason records why a session was submitted.
type SubmitReason string

const (
	ReasonManual SubmitReason = "manual"
	ReasonTimeUp SubmitReason = "time_up"
)

// Result summarizes a submitted session.
type Result struct {
	SessionID   string
	ExamID      string
	ExamTitle   string
	Reason      SubmitReason
	Total       int
	Answered    int
	Unanswered  []int
	Responses   map[int]string
	StartedAt   time.Time
	SubmittedAt time.Time

	DurationSeconds  int
	RemainingSeconds int
}

// UsedSeconds is how much of the time limit was spent.
func (r Result) UsedSeconds() int {
	used := r.DurationSeconds - r.RemainingSeconds
	if used < 0 {
		return 0
	}
	return used
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRecorder reports every state change to rec.
func WithRecorder(rec Recorder) SessionOption {
	return func(s *Session) { s.recorder = rec }
}

// WithWarn sets the hook that receives recorder failures. Without one they
// are dropped.
func WithWarn(fn func(error)) SessionOption {
	return func(s *Session) { s.warn = fn }
}

// WithNow overrides the clock used for timestamps.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// OnSubmit registers a hook called once after the session is submitted,
// whether by the learner or by time running out.
func OnSubmit(fn func(Result)) SessionOption {
	return func(s *Session) { s.onSubmit = fn }
}

// Session is the in-memory store for one exam attempt. All methods are safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	exam      *Exam
	current   int
	responses map[int]string
	remaining int
	status    Status
	reason    SubmitReason
	startedAt time.Time
	result    *Result

	now      func() time.Time
	recorder Recorder
	warn     func(error)
	onSubmit func(Result)
}

// NewSession starts an in-progress session for e.
func NewSession(e *Exam, opts ...SessionOption) *Session {
	s := &Session{
		exam:      e,
		responses: make(map[int]string),
		remaining: e.DurationSeconds(),
		status:    StatusInProgress,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.startedAt = s.now()

	s.mu.Lock()
	ev := s.eventLocked(EventStart)
	s.mu.Unlock()
	s.record(ev)

	return s
}

// Callbacks binds the countdown's progress and expiry notifications to the
// session.
func (s *Session) Callbacks() countdown.Callbacks {
	return countdown.Callbacks{
		OnTimeUpdate: s.TimeUpdate,
		OnTimeUp:     s.TimeUp,
	}
}

// TimeUpdate stores the latest remaining time. Ignored after submission.
func (s *Session) TimeUpdate(remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return
	}
	s.remaining = max(remaining, 0)
}

// TimeUp auto-submits the session. A session already submitted is left
// unchanged.
func (s *Session) TimeUp() {
	s.mu.Lock()
	if s.status == StatusInProgress {
		s.remaining = 0
	}
	s.mu.Unlock()
	_, _ = s.submit(ReasonTimeUp)
}

// Submit ends the session at the learner's request.
func (s *Session) Submit() (Result, error) {
	return s.submit(ReasonManual)
}

func (s *Session) submit(reason SubmitReason) (Result, error) {
	s.mu.Lock()
	if s.status == StatusSubmitted {
		s.mu.Unlock()
		return Result{}, ErrSubmitted
	}
	s.status = StatusSubmitted
	s.reason = reason
	res := s.buildResultLocked()
	s.result = &res
	ev := s.eventLocked(EventSubmit)
	ev.Reason = reason
	hook := s.onSubmit
	s.mu.Unlock()

	s.record(ev)
	if hook != nil {
		hook(res)
	}
	return res, nil
}

// Navigate moves to the question at the 0-based index.
func (s *Session) Navigate(index int) error {
	s.mu.Lock()
	if s.status == StatusSubmitted {
		s.mu.Unlock()
		return ErrSubmitted
	}
	if index < 0 || index >= s.exam.Total() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d (total %d)", ErrOutOfRange, index, s.exam.Total())
	}
	if index == s.current {
		s.mu.Unlock()
		return nil
	}
	s.current = index
	ev := s.eventLocked(EventNavigate)
	ev.Question = index + 1
	s.mu.Unlock()

	s.record(ev)
	return nil
}

// NavigateIntent is a navigation callback for the grid renderer. Errors go
// to the warning hook.
func (s *Session) NavigateIntent(index int) {
	if err := s.Navigate(index); err != nil {
		s.warnf("navigate: %w", err)
	}
}

// Next moves to the following question. At the last question it is a no-op.
func (s *Session) Next() error {
	s.mu.Lock()
	next := s.current + 1
	last := s.exam.Total() - 1
	s.mu.Unlock()
	if next > last {
		return nil
	}
	return s.Navigate(next)
}

// Prev moves to the preceding question. At the first question it is a no-op.
func (s *Session) Prev() error {
	s.mu.Lock()
	prev := s.current - 1
	s.mu.Unlock()
	if prev < 0 {
		return nil
	}
	return s.Navigate(prev)
}

// Answer sets the response for the current question. A blank response
// clears it.
func (s *Session) Answer(response string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return s.Clear()
	}

	s.mu.Lock()
	if s.status == StatusSubmitted {
		s.mu.Unlock()
		return ErrSubmitted
	}
	q := s.exam.Questions[s.current]
	if q.Kind == KindChoice && !q.HasChoice(response) {
		s.mu.Unlock()
		return fmt.Errorf("%w: question %d: %q", ErrInvalidChoice, s.current+1, response)
	}
	number := s.current + 1
	if s.responses[number] == response {
		s.mu.Unlock()
		return nil
	}
	s.responses[number] = response
	ev := s.eventLocked(EventAnswer)
	ev.Question = number
	ev.Response = response
	s.mu.Unlock()

	s.record(ev)
	return nil
}

// Clear removes the response for the current question.
func (s *Session) Clear() error {
	s.mu.Lock()
	if s.status == StatusSubmitted {
		s.mu.Unlock()
		return ErrSubmitted
	}
	number := s.current + 1
	if _, ok := s.responses[number]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.responses, number)
	ev := s.eventLocked(EventClear)
	ev.Question = number
	s.mu.Unlock()

	s.record(ev)
	return nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Exam returns the exam being taken.
func (s *Session) Exam() *Exam { return s.exam }

// Current returns the 0-based current question index.
func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns the question at the current index.
func (s *Session) CurrentQuestion() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exam.Questions[s.current]
}

// Total returns the number of questions.
func (s *Session) Total() int { return s.exam.Total() }

// Answered returns the sorted 1-based numbers of answered questions.
func (s *Session) Answered() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answeredLocked()
}

// Response returns the stored response for a 1-based question number.
func (s *Session) Response(number int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responses[number]
	return r, ok
}

// Remaining returns the last observed remaining seconds.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Status returns the session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result returns the submission summary, or false while in progress.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func (s *Session) answeredLocked() []int {
	nums := make([]int, 0, len(s.responses))
	for n := range s.responses {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

func (s *Session) buildResultLocked() Result {
	total := s.exam.Total()
	var unanswered []int
	for n := 1; n <= total; n++ {
		if _, ok := s.responses[n]; !ok {
			unanswered = append(unanswered, n)
		}
	}
	responses := make(map[int]string, len(s.responses))
	for n, r := range s.responses {
		responses[n] = r
	}
	return Result{
		SessionID:        s.id,
		ExamID:           s.exam.ID,
		ExamTitle:        s.exam.Title,
		Reason:           s.reason,
		Total:            total,
		Answered:         len(s.responses),
		Unanswered:       unanswered,
		Responses:        responses,
		StartedAt:        s.startedAt,
		SubmittedAt:      s.now(),
		DurationSeconds:  s.exam.DurationSeconds(),
		RemainingSeconds: s.remaining,
	}
}

func (s *Session) eventLocked(kind EventKind) Event {
	return Event{
		SessionID: s.id,
		ExamID:    s.exam.ID,
		ExamTitle: s.exam.Title,
		Kind:      kind,
		At:        s.now(),
		Remaining: s.remaining,
		Total:     s.exam.Total(),
		Answered:  len(s.responses),
	}
}

// record forwards ev to the recorder outside the session lock.
func (s *Session) record(ev Event) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.Background(), ev); err != nil {
		s.warnf("record %s event: %w", ev.Kind, err)
	}
}

func (s *Session) warnf(format string, args ...any) {
	if s.warn != nil {
		s.warn(fmt.Errorf(format, args...))
	}
}
