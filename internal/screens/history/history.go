// Package history lists past attempts of an exam with their event logs.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/router"
	"github.com/abhisek/examdesk/internal/screen"
	"github.com/abhisek/examdesk/internal/store"
	"github.com/abhisek/examdesk/internal/ui/layout"
	"github.com/abhisek/examdesk/internal/ui/theme"
)

// listLimit bounds the attempts loaded at once.
const listLimit = 50

// Source reads recorded attempts.
type Source interface {
	ListAttempts(ctx context.Context, opts store.QueryOpts) ([]store.Attempt, error)
	AttemptEvents(ctx context.Context, attemptID string) ([]store.AttemptEvent, error)
}

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

type eventsLoadedMsg struct {
	AttemptID string
	Events    []store.AttemptEvent
	Err       error
}

// HistoryScreen displays past attempts of one exam.
type HistoryScreen struct {
	source   Source
	examID   string
	attempts []store.Attempt
	events   map[string][]store.AttemptEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for attempts of examID.
func New(source Source, examID string) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		examID:   examID,
		events:   make(map[string][]store.AttemptEvent),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.source.ListAttempts(context.Background(), store.QueryOpts{
			Limit:  listLimit,
			ExamID: s.examID,
		})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past attempts"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events[msg.AttemptID] = msg.Events
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.attempts) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadEvents(s.attempts[s.selected].ID)
		}
	}
	return s, nil
}

// loadEvents fetches an attempt's log the first time it is expanded.
func (s *HistoryScreen) loadEvents(id string) tea.Cmd {
	if _, ok := s.events[id]; ok {
		return nil
	}
	return func() tea.Msg {
		events, err := s.source.AttemptEvents(context.Background(), id)
		return eventsLoadedMsg{AttemptID: id, Events: events, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading attempts...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d answered  %s used",
			prefix, a.StartedAt.Local().Format("Jan 02, 2006 15:04"), outcome(a),
			a.Answered, a.Total, countdown.Format(a.UsedSecs()))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderEvents(a.ID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderEvents(id string, width int) string {
	events, ok := s.events[id]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading events...")) + "\n"
	}

	var b strings.Builder
	for _, ev := range events {
		line := fmt.Sprintf("    %s  %-8s", countdown.Format(ev.RemainingSecs), ev.Kind)
		switch ev.Kind {
		case exam.EventAnswer:
			line += fmt.Sprintf(" Q%d = %q", ev.Question, ev.Response)
		case exam.EventNavigate, exam.EventClear:
			line += fmt.Sprintf(" Q%d", ev.Question)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(kindColor(ev.Kind)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func outcome(a store.Attempt) string {
	switch {
	case a.Status != exam.StatusSubmitted:
		return "unfinished"
	case a.Reason == exam.ReasonTimeUp:
		return "time up"
	default:
		return "submitted"
	}
}

func kindColor(k exam.EventKind) color.Color {
	switch k {
	case exam.EventStart:
		return theme.Secondary
	case exam.EventSubmit:
		return theme.Success
	case exam.EventAnswer:
		return theme.Text
	default:
		return theme.TextDim
	}
}
