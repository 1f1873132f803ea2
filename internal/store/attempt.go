package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examdesk/internal/exam"
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored timestamps
// sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// attemptRepo implements AttemptRepo over database/sql.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Record appends ev to the attempt log. A start event creates the attempt
// row; a submit event finalizes it.
func (r *attemptRepo) Record(ctx context.Context, ev exam.Event) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ts := ev.At.UTC().Format(timeLayout)

	switch ev.Kind {
	case exam.EventStart:
		// Nothing has ticked yet, so remaining is the full time limit.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO attempts (id, exam_id, exam_title, total, duration_secs, status, remaining_secs, started_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.SessionID, ev.ExamID, ev.ExamTitle, ev.Total, ev.Remaining,
			string(exam.StatusInProgress), ev.Remaining, ts,
		)
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
	case exam.EventSubmit:
		res, err := tx.ExecContext(ctx,
			`UPDATE attempts SET status = ?, reason = ?, answered = ?, remaining_secs = ?, submitted_at = ?
			 WHERE id = ?`,
			string(exam.StatusSubmitted), string(ev.Reason), ev.Answered, ev.Remaining, ts, ev.SessionID,
		)
		if err != nil {
			return fmt.Errorf("finalize attempt: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("finalize attempt %s: not found", ev.SessionID)
		}
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE attempts SET answered = ?, remaining_secs = ? WHERE id = ?`,
			ev.Answered, ev.Remaining, ev.SessionID,
		)
		if err != nil {
			return fmt.Errorf("update attempt: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempt_events (sequence, attempt_id, kind, question, response, remaining_secs, answered, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ev.SessionID, string(ev.Kind), ev.Question, ev.Response, ev.Remaining, ev.Answered, ts,
	)
	if err != nil {
		return fmt.Errorf("save %s event: %w", ev.Kind, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if opts.ExamID != "" {
		clauses = append(clauses, "exam_id = ?")
		args = append(args, opts.ExamID)
	}
	if !opts.From.IsZero() {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, opts.From.UTC().Format(timeLayout))
	}
	if !opts.To.IsZero() {
		clauses = append(clauses, "started_at <= ?")
		args = append(args, opts.To.UTC().Format(timeLayout))
	}

	query := `SELECT id, exam_id, exam_title, total, duration_secs, status, reason, answered, remaining_secs, started_at, submitted_at
		FROM attempts WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY started_at DESC, id`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a                  Attempt
			status, reason     string
			started, submitted string
		)
		if err := rows.Scan(&a.ID, &a.ExamID, &a.ExamTitle, &a.Total, &a.DurationSecs,
			&status, &reason, &a.Answered, &a.RemainingSecs, &started, &submitted); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Status = exam.Status(status)
		a.Reason = exam.SubmitReason(reason)
		if a.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if a.SubmittedAt, err = parseTime(submitted); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) AttemptEvents(ctx context.Context, attemptID string) ([]AttemptEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, attempt_id, kind, question, response, remaining_secs, answered, timestamp
		 FROM attempt_events WHERE attempt_id = ? ORDER BY sequence`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var (
			ev       AttemptEvent
			kind, ts string
		)
		if err := rows.Scan(&ev.Sequence, &ev.AttemptID, &kind, &ev.Question, &ev.Response,
			&ev.RemainingSecs, &ev.Answered, &ts); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		ev.Kind = exam.EventKind(kind)
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) DeleteAttempts(ctx context.Context, examID string) (int, error) {
	query := `DELETE FROM attempts`
	var args []any
	if examID != "" {
		query += ` WHERE exam_id = ?`
		args = append(args, examID)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	return int(n), nil
}

// parseTime reads a stored RFC 3339 timestamp. Empty means unset.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
