// Package lobby is the pre-exam screen: exam overview and a start menu.
package lobby

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

// StartFunc builds the screen for a fresh attempt.
type StartFunc func() screen.Screen

// LobbyScreen shows the exam overview before the clock starts.
type LobbyScreen struct {
	exam     *exam.Exam
	menu     components.Menu
	history  StartFunc
	attempts int
}

var _ screen.Screen = (*LobbyScreen)(nil)
var _ screen.KeyHintProvider = (*LobbyScreen)(nil)

// Option configures a LobbyScreen.
type Option func(*LobbyScreen)

// WithHistory adds a menu entry that opens the screen built by fn.
func WithHistory(fn StartFunc) Option {
	return func(l *LobbyScreen) {
		l.history = fn
	}
}

// New creates a lobby for e. start is called each time the learner begins
// an attempt.
func New(e *exam.Exam, start StartFunc, opts ...Option) *LobbyScreen {
	l := &LobbyScreen{exam: e}
	for _, opt := range opts {
		opt(l)
	}

	items := []components.MenuItem{
		{Label: "Start exam", Key: "s", Action: func() tea.Cmd {
			l.attempts++
			next := start()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
	}
	if l.history != nil {
		items = append(items, components.MenuItem{Label: "Past attempts", Key: "h", Action: func() tea.Cmd {
			next := l.history()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Key: "q", Action: func() tea.Cmd {
		return tea.Quit
	}})
	l.menu = components.NewMenu(items)
	return l
}

func (l *LobbyScreen) Init() tea.Cmd {
	return nil
}

func (l *LobbyScreen) Title() string {
	return l.exam.Title
}

func (l *LobbyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Start"},
	}
	if l.history != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (l *LobbyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LobbyScreen) View(width, height int) string {
	e := l.exam
	choice, text := 0, 0
	for _, q := range e.Questions {
		if q.Kind == exam.KindChoice {
			choice++
		} else {
			text++
		}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(e.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · format %s", e.ID, e.Format)))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Questions", fmt.Sprintf("%d (%d choice, %d written)", e.Total(), choice, text)},
		{"Time limit", countdown.Format(e.DurationSeconds())},
	}
	if l.attempts > 0 {
		rows = append(rows, [2]string{"Attempts this sitting", fmt.Sprintf("%d", l.attempts)})
	}
	for _, r := range rows {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%-22s", r[0])))
		b.WriteString(theme.Body.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Body.Render("The clock starts when you begin. When it reaches"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("zero your answers are submitted automatically."))
	b.WriteString("\n\n")
	b.WriteString(l.menu.View())

	card := theme.Card.Width(min(width-4, 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
