package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm exam-hall tones with warm alert colours
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F97316") // Orange
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 3)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)

// Countdown urgency
var (
	ClockCalm = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	ClockLow = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ClockCritical = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ClockUrgent = lipgloss.NewStyle().
			Foreground(Text).
			Background(Error).
			Bold(true)
)

// Navigation grid cells
var (
	CellCurrent = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true)

	CellAnswered = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Success)

	CellUnanswered = lipgloss.NewStyle().
			Foreground(TextDim).
			Background(Border)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
