package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/ui/theme"
)

// Countdown renders the remaining exam time, coloured by urgency, with a bar
// showing how much of the limit has been used.
type Countdown struct {
	Remaining  int
	Total      int
	Thresholds countdown.Thresholds
	Width      int
}

// NewCountdown creates a full countdown for a time limit of total seconds.
func NewCountdown(total int, th countdown.Thresholds) Countdown {
	return Countdown{
		Remaining:  total,
		Total:      total,
		Thresholds: th,
	}
}

// Level is the urgency of the current remaining time.
func (c Countdown) Level() countdown.Urgency {
	return c.Thresholds.Level(c.Remaining)
}

// Style returns the clock style for the current urgency.
func (c Countdown) Style() lipgloss.Style {
	switch c.Level() {
	case countdown.UrgencyUrgent:
		return theme.ClockUrgent
	case countdown.UrgencyCritical:
		return theme.ClockCritical
	case countdown.UrgencyLow:
		return theme.ClockLow
	default:
		return theme.ClockCalm
	}
}

// Clock renders the styled HH:MM:SS text.
func (c Countdown) Clock() string {
	return c.Style().Render(" " + countdown.Format(c.Remaining) + " ")
}

// Elapsed is the used fraction of the limit in [0, 1].
func (c Countdown) Elapsed() float64 {
	if c.Total <= 0 {
		return 1
	}
	return min(max(float64(c.Total-c.Remaining)/float64(c.Total), 0), 1)
}

// View renders the clock above a progress bar.
func (c Countdown) View() string {
	bar := NewProgressBar("", c.Elapsed(), false, max(c.Width, 10))
	bar.Fill = lipgloss.NewStyle().Background(c.Style().GetForeground())
	if c.Level() == countdown.UrgencyUrgent {
		bar.Fill = lipgloss.NewStyle().Background(theme.Error)
	}

	label := theme.Hint.Render("time left")
	return lipgloss.JoinVertical(lipgloss.Left,
		c.Clock()+"  "+label,
		bar.View(),
	)
}
