package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/examdesk/internal/exam"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounterMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Fatalf("sequence %d not greater than %d", n, last)
		}
		last = n
	}
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	second, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if second <= first {
		t.Errorf("sequence after reopen = %d, want > %d", second, first)
	}
}

func event(id string, kind exam.EventKind, at time.Time) exam.Event {
	return exam.Event{
		SessionID: id,
		ExamID:    "algebra",
		ExamTitle: "Algebra",
		Kind:      kind,
		At:        at,
		Total:     5,
		Remaining: 600,
	}
}

func TestRecordAttemptLifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	steps := []exam.Event{
		event("a1", exam.EventStart, base),
		func() exam.Event {
			ev := event("a1", exam.EventAnswer, base.Add(10*time.Second))
			ev.Question, ev.Response, ev.Answered, ev.Remaining = 1, "4", 1, 590
			return ev
		}(),
		func() exam.Event {
			ev := event("a1", exam.EventNavigate, base.Add(20*time.Second))
			ev.Question, ev.Answered, ev.Remaining = 3, 1, 580
			return ev
		}(),
		func() exam.Event {
			ev := event("a1", exam.EventSubmit, base.Add(30*time.Second))
			ev.Reason, ev.Answered, ev.Remaining = exam.ReasonManual, 1, 570
			return ev
		}(),
	}
	for _, ev := range steps {
		if err := repo.Record(ctx, ev); err != nil {
			t.Fatalf("record %s: %v", ev.Kind, err)
		}
	}

	attempts, err := repo.ListAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("got %d attempts, want 1", len(attempts))
	}
	a := attempts[0]
	if a.Status != exam.StatusSubmitted || a.Reason != exam.ReasonManual {
		t.Errorf("status/reason = %s/%s, want submitted/manual", a.Status, a.Reason)
	}
	if a.Answered != 1 || a.RemainingSecs != 570 || a.DurationSecs != 600 {
		t.Errorf("answered=%d remaining=%d duration=%d", a.Answered, a.RemainingSecs, a.DurationSecs)
	}
	if a.UsedSecs() != 30 {
		t.Errorf("used = %d, want 30", a.UsedSecs())
	}
	if !a.StartedAt.Equal(base) {
		t.Errorf("started_at = %v, want %v", a.StartedAt, base)
	}
	if !a.SubmittedAt.Equal(base.Add(30 * time.Second)) {
		t.Errorf("submitted_at = %v", a.SubmittedAt)
	}

	events, err := repo.AttemptEvents(ctx, "a1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != len(steps) {
		t.Fatalf("got %d events, want %d", len(events), len(steps))
	}
	for i, ev := range events {
		if ev.Kind != steps[i].Kind {
			t.Errorf("event %d kind = %s, want %s", i, ev.Kind, steps[i].Kind)
		}
		if i > 0 && ev.Sequence <= events[i-1].Sequence {
			t.Errorf("event %d sequence %d not increasing", i, ev.Sequence)
		}
	}
	if events[1].Response != "4" || events[1].Question != 1 {
		t.Errorf("answer event = %+v", events[1])
	}
}

func TestRecordUnknownAttemptFails(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	err := repo.Record(ctx, event("ghost", exam.EventSubmit, time.Now()))
	if err == nil {
		t.Fatal("expected error finalizing unknown attempt")
	}

	// Event rows reference the attempt, so orphans are rejected too.
	err = repo.Record(ctx, event("ghost", exam.EventAnswer, time.Now()))
	if err == nil {
		t.Fatal("expected foreign key error for orphan event")
	}
}

func TestListAttemptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a1", "a2", "a3"} {
		ev := event(id, exam.EventStart, base.Add(time.Duration(i)*time.Hour))
		if id == "a2" {
			ev.ExamID = "geometry"
		}
		if err := repo.Record(ctx, ev); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	all, err := repo.ListAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a3" || all[2].ID != "a1" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[0].Status != exam.StatusInProgress || !all[0].SubmittedAt.IsZero() {
		t.Errorf("in-progress attempt = %+v", all[0])
	}

	limited, err := repo.ListAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit: got %d, want 2", len(limited))
	}

	byExam, err := repo.ListAttempts(ctx, QueryOpts{ExamID: "geometry"})
	if err != nil {
		t.Fatalf("list exam: %v", err)
	}
	if len(byExam) != 1 || byExam[0].ID != "a2" {
		t.Errorf("exam filter: %+v", byExam)
	}

	ranged, err := repo.ListAttempts(ctx, QueryOpts{From: base.Add(30 * time.Minute), To: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != "a2" {
		t.Errorf("range filter: %+v", ranged)
	}
}

func TestSessionRecordsThroughRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	e := &exam.Exam{
		ID:        "quick",
		Title:     "Quick",
		TimeLimit: time.Minute,
		Questions: []exam.Question{
			{ID: "q1", Prompt: "p1", Kind: exam.KindText},
			{ID: "q2", Prompt: "p2", Kind: exam.KindText},
		},
	}
	var warnings []error
	sess := exam.NewSession(e, exam.WithRecorder(repo), exam.WithWarn(func(err error) { warnings = append(warnings, err) }))
	if err := sess.Answer("hello"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	sess.TimeUpdate(12)
	sess.TimeUp()

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	attempts, err := repo.ListAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("got %d attempts", len(attempts))
	}
	a := attempts[0]
	if a.ID != sess.ID() || a.Reason != exam.ReasonTimeUp || a.Answered != 1 || a.RemainingSecs != 0 {
		t.Errorf("attempt = %+v", a)
	}

	events, err := repo.AttemptEvents(ctx, sess.ID())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var kinds []exam.EventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	want := []exam.EventKind{exam.EventStart, exam.EventAnswer, exam.EventSubmit}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("EXAMDESK_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("EXAMDESK_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "examdesk", "examdesk.db")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestDeleteAttemptsCascades(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a1", "a2"} {
		ev := event(id, exam.EventStart, base.Add(time.Duration(i)*time.Minute))
		if id == "a2" {
			ev.ExamID = "geometry"
		}
		if err := repo.Record(ctx, ev); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	n, err := repo.DeleteAttempts(ctx, "geometry")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	events, err := repo.AttemptEvents(ctx, "a2")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events of deleted attempt = %d, want 0", len(events))
	}

	n, err = repo.DeleteAttempts(ctx, "")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
}
