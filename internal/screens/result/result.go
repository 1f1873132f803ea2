// Package result shows the summary of a submitted attempt.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/router"
	"github.com/abhisek/examdesk/internal/screen"
	"github.com/abhisek/examdesk/internal/ui/components"
	"github.com/abhisek/examdesk/internal/ui/layout"
	"github.com/abhisek/examdesk/internal/ui/theme"
)

// ResultScreen displays a submitted attempt.
type ResultScreen struct {
	result exam.Result
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen.
func New(res exam.Result) *ResultScreen {
	return &ResultScreen{result: res}
}

// Result returns the summary on display.
func (s *ResultScreen) Result() exam.Result {
	return s.result
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
		{Key: "Esc", Description: "Back to lobby"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, tea.Quit
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	var b strings.Builder

	heading := "Exam submitted"
	headingColor := theme.Success
	if res.Reason == exam.ReasonTimeUp {
		heading = "Time is up: answers submitted"
		headingColor = theme.Warning
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(headingColor).
		Bold(true).
		Render(heading))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(res.ExamTitle))
	b.WriteString("\n\n")

	pct := 0.0
	if res.Total > 0 {
		pct = float64(res.Answered) / float64(res.Total)
	}
	bar := components.NewProgressBar("Answered", pct, true, min(width-8, 50))

	var card strings.Builder
	card.WriteString(bar.View())
	card.WriteString("\n\n")
	for _, row := range [][2]string{
		{"Answered", fmt.Sprintf("%d of %d", res.Answered, res.Total)},
		{"Time used", countdown.Format(res.UsedSeconds())},
		{"Time left", countdown.Format(res.RemainingSeconds)},
		{"Submitted", submittedBy(res.Reason)},
	} {
		card.WriteString(theme.Hint.Render(fmt.Sprintf("%-12s", row[0])))
		card.WriteString(theme.Body.Render(row[1]))
		card.WriteString("\n")
	}
	if len(res.Unanswered) > 0 {
		card.WriteString("\n")
		card.WriteString(theme.Warn.Render("Unanswered: " + joinNumbers(res.Unanswered)))
		card.WriteString("\n")
	}
	card.WriteString("\n")
	card.WriteString(theme.Hint.Render("Attempt " + res.SessionID))

	box := theme.Card.Width(min(width-4, 60)).Render(card.String())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	return b.String()
}

func submittedBy(r exam.SubmitReason) string {
	if r == exam.ReasonTimeUp {
		return "automatically (time up)"
	}
	return "by you"
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
