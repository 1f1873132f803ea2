package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/navigator"
	"github.com/abhisek/examdesk/internal/ui/theme"
)

// sideWidth is the width of the clock and grid column.
const sideWidth = 34

func (s *ExamScreen) View(width, height int) string {
	if s.confirming {
		return s.renderConfirm(width, height)
	}

	side := min(sideWidth, width/2)
	main := max(width-side-4, 20)

	left := s.renderQuestion(main)
	right := s.renderSide(side)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(main).Render(left),
		"  ",
		lipgloss.NewStyle().Width(side).Render(right),
	)

	if len(s.warnings) > 0 {
		var w strings.Builder
		for _, msg := range s.warnings {
			w.WriteString(theme.Warn.Render("warning: " + msg))
			w.WriteString("\n")
		}
		body += "\n\n" + w.String()
	}
	return body
}

// renderQuestion renders the current prompt and its answer widget.
func (s *ExamScreen) renderQuestion(width int) string {
	q := s.session.CurrentQuestion()
	number := s.shown + 1

	var b strings.Builder

	kind := "written answer"
	if q.Kind == ex.KindChoice {
		kind = "choose one"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", number, s.session.Total())))
	b.WriteString(theme.Hint.Render("  · " + kind))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(max(width-4, 10)).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	if q.Kind == ex.KindChoice {
		b.WriteString(s.choices.View())
	} else {
		b.WriteString("  Answer: " + s.input.View())
	}

	if s.grid.Focused {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("  Pick a question in the grid"))
	}
	return b.String()
}

// renderSide renders the countdown above the navigation grid.
func (s *ExamScreen) renderSide(width int) string {
	s.clock.Width = width
	s.grid.Width = width

	title := "Questions"
	if s.grid.Focused {
		title = "Questions (Enter to jump)"
	}

	return s.clock.View() + "\n\n" +
		theme.Selected.Render(title) + "\n" +
		s.grid.View()
}

// renderConfirm renders the submit confirmation dialog.
func (s *ExamScreen) renderConfirm(width, height int) string {
	sum := navigator.Summarize(s.grid.Items, s.session.Answered())

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Submit your answers?"))
	b.WriteString("\n\n")

	if n := len(sum.Pending); n > 0 {
		b.WriteString(theme.Warn.Render(fmt.Sprintf("%d of %d questions unanswered", n, sum.Total)))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Unanswered: " + joinNumbers(sum.Pending)))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("All %d questions answered", sum.Total)))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Time left: " + s.clock.Clock()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Submit now"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Keep working"))

	dialog := theme.Dialog.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
