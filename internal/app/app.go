package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/router"
	"github.com/abhisek/examdesk/internal/screen"
	examscreen "github.com/abhisek/examdesk/internal/screens/exam"
	"github.com/abhisek/examdesk/internal/screens/history"
	"github.com/abhisek/examdesk/internal/screens/lobby"
	"github.com/abhisek/examdesk/internal/ui/layout"
)

// Options configures the interactive exam program.
type Options struct {
	Exam       *exam.Exam
	Recorder   exam.Recorder
	Thresholds countdown.Thresholds

	// History enables the past attempts screen.
	History history.Source

	// OnSubmit is called with every submitted attempt.
	OnSubmit func(exam.Result)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the lobby for opts.Exam.
func newAppModel(opts Options) AppModel {
	start := func() screen.Screen {
		return examscreen.New(opts.Exam, examscreen.Options{
			Recorder:   opts.Recorder,
			Thresholds: opts.Thresholds,
			OnSubmit:   opts.OnSubmit,
		})
	}
	var lobbyOpts []lobby.Option
	if opts.History != nil {
		lobbyOpts = append(lobbyOpts, lobby.WithHistory(func() screen.Screen {
			return history.New(opts.History, opts.Exam.ID)
		}))
	}
	return AppModel{
		router: router.New(lobby.New(opts.Exam, start, lobbyOpts...)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc belongs to the screens: leaving an attempt must not be one
		// keystroke away.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// close releases the screens left on the stack.
func (m AppModel) close() {
	m.router.Close()
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Exam == nil {
		return fmt.Errorf("no exam to run")
	}
	model := newAppModel(opts)
	defer model.close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
