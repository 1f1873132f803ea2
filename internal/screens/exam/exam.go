// Package exam is the screen where an attempt is taken: one question at a
// time, a navigation grid, and a countdown that submits on expiry.
package exam

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdesk/internal/countdown"
	ex "github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/navigator"
	"github.com/abhisek/examdesk/internal/router"
	"github.com/abhisek/examdesk/internal/screen"
	"github.com/abhisek/examdesk/internal/screens/result"
	"github.com/abhisek/examdesk/internal/ui/components"
	"github.com/abhisek/examdesk/internal/ui/layout"
)

// maxWarnings bounds the warning lines kept on screen.
const maxWarnings = 3

// Options configures an exam screen.
type Options struct {
	Recorder   ex.Recorder
	Thresholds countdown.Thresholds
	OnSubmit   func(ex.Result)
}

// ExamScreen implements screen.Screen for an attempt in progress.
type ExamScreen struct {
	session    *ex.Session
	controller *countdown.Controller
	sched      *countdown.ManualScheduler
	renderer   navigator.Renderer

	grid    components.NavGrid
	clock   components.Countdown
	choices components.ChoiceList
	input   components.TextInput

	shown      int // question index loaded into the answer widgets
	confirming bool
	finished   bool
	warnings   []string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)
var _ screen.Closer = (*ExamScreen)(nil)

// New creates a screen with a fresh session for e. The clock starts in Init.
func New(e *ex.Exam, opts Options) *ExamScreen {
	s := &ExamScreen{sched: countdown.NewManualScheduler()}
	th := opts.Thresholds
	if th == (countdown.Thresholds{}) {
		th = countdown.DefaultThresholds()
	}

	sessOpts := []ex.SessionOption{ex.WithWarn(s.warn)}
	if opts.Recorder != nil {
		sessOpts = append(sessOpts, ex.WithRecorder(opts.Recorder))
	}
	if opts.OnSubmit != nil {
		sessOpts = append(sessOpts, ex.OnSubmit(opts.OnSubmit))
	}
	s.session = ex.NewSession(e, sessOpts...)

	s.controller = countdown.New(e.DurationSeconds(), s.session.Callbacks(),
		countdown.WithScheduler(s.sched))
	s.renderer = navigator.New(s.session.NavigateIntent)
	s.grid = components.NewNavGrid(s.renderer)
	s.clock = components.NewCountdown(e.DurationSeconds(), th)

	s.loadQuestion()
	s.refresh()
	return s
}

// Session returns the attempt driven by this screen.
func (s *ExamScreen) Session() *ex.Session {
	return s.session
}

func (s *ExamScreen) Init() tea.Cmd {
	s.controller.Start()
	s.refresh()
	if s.session.Status() == ex.StatusSubmitted {
		return s.finish()
	}
	return tea.Batch(
		tickCmd(s.sched.Period(), s.session.ID()),
		s.focusInput(),
	)
}

func (s *ExamScreen) Title() string {
	return s.session.Exam().Title
}

func (s *ExamScreen) Status() string {
	return fmt.Sprintf("Q %d/%d  ", s.session.Current()+1, s.session.Total()) + s.clock.Clock()
}

// Close stops the countdown. Safe to call more than once.
func (s *ExamScreen) Close() {
	s.controller.Stop()
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.finished:
		return nil
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit now"},
			{Key: "N", Description: "Keep working"},
		}
	case s.grid.Focused:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Go to question"},
			{Key: "Tab", Description: "Back"},
		}
	case s.currentKind() == ex.KindChoice:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter/A-Z", Description: "Answer"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "Tab", Description: "Grid"},
			{Key: "Ctrl+S", Description: "Submit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "PgUp/PgDn", Description: "Prev/Next"},
			{Key: "Tab", Description: "Grid"},
			{Key: "Ctrl+S", Description: "Submit"},
		}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward cursor blinks and the like to the text input.
	if !s.finished && !s.grid.Focused && s.currentKind() == ex.KindText {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.finished || msg.session != s.session.ID() {
		return s, nil
	}

	// The tick that reaches zero submits; keep typed text with it.
	if s.controller.Remaining() <= 1 {
		s.savePending()
	}

	s.sched.Fire()
	s.refresh()

	if s.session.Status() == ex.StatusSubmitted {
		return s, s.finish()
	}
	if !s.sched.Active() {
		return s, nil
	}
	return s, tickCmd(s.sched.Period(), s.session.ID())
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	key := msg.String()

	// Submit confirmation dialog.
	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "ctrl+s":
		s.savePending()
		s.confirming = true
		return s, nil
	case "tab":
		return s, s.toggleGrid()
	case "pgdown", "ctrl+n":
		return s, s.move(s.session.Next)
	case "pgup", "ctrl+p":
		return s, s.move(s.session.Prev)
	case "ctrl+x":
		if err := s.session.Clear(); err != nil {
			s.warn(err)
		}
		s.loadQuestion()
		s.refresh()
		return s, s.focusInput()
	}

	if s.grid.Focused {
		if key == "esc" {
			return s, s.toggleGrid()
		}
		var selected bool
		s.grid, selected = s.grid.Update(msg)
		if selected {
			s.grid.Focused = false
			s.refresh()
			return s, s.focusInput()
		}
		return s, nil
	}

	if s.currentKind() == ex.KindChoice {
		switch key {
		case "left", "h":
			return s, s.move(s.session.Prev)
		case "right", "l":
			return s, s.move(s.session.Next)
		}
		var changed bool
		s.choices, changed = s.choices.Update(msg)
		if changed {
			if err := s.session.Answer(s.choices.Value()); err != nil {
				s.warn(err)
			}
			s.refresh()
		}
		return s, nil
	}

	if key == "enter" {
		s.savePending()
		s.refresh()
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit ends the attempt at the learner's request.
func (s *ExamScreen) submit() tea.Cmd {
	s.savePending()
	if _, err := s.session.Submit(); err != nil && !errors.Is(err, ex.ErrSubmitted) {
		s.warn(err)
		return nil
	}
	s.refresh()
	return s.finish()
}

// finish stops the clock and hands over to the result screen.
func (s *ExamScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	res, ok := s.session.Result()
	if !ok {
		return nil
	}
	s.finished = true
	s.controller.Cancel()
	s.input.Blur()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result.New(res)}
	}
}

// move saves pending text and then navigates with fn.
func (s *ExamScreen) move(fn func() error) tea.Cmd {
	s.savePending()
	if err := fn(); err != nil {
		s.warn(err)
	}
	s.refresh()
	return s.focusInput()
}

func (s *ExamScreen) toggleGrid() tea.Cmd {
	if !s.grid.Focused {
		s.savePending()
		s.grid.Focused = true
		s.input.Blur()
		s.refresh()
		return nil
	}
	s.grid.Focused = false
	s.refresh()
	return s.focusInput()
}

func (s *ExamScreen) focusInput() tea.Cmd {
	if s.grid.Focused || s.currentKind() != ex.KindText {
		s.input.Blur()
		return nil
	}
	return s.input.Focus()
}

// savePending stores edited text for the question on screen.
func (s *ExamScreen) savePending() {
	if s.currentKind() != ex.KindText || !s.input.Dirty() {
		return
	}
	if s.session.Current() != s.shown {
		return
	}
	if err := s.session.Answer(s.input.Value()); err != nil {
		s.warn(err)
		return
	}
	s.input.MarkSaved()
}

// loadQuestion resets the answer widgets for the current question.
func (s *ExamScreen) loadQuestion() {
	s.shown = s.session.Current()
	q := s.session.CurrentQuestion()
	resp, _ := s.session.Response(s.shown + 1)
	if q.Kind == ex.KindChoice {
		s.choices = components.NewChoiceList(q.Choices, resp)
		s.input = components.NewTextInput("", "", 0)
		s.input.Blur()
		return
	}
	s.input = components.NewTextInput("Type your answer...", resp, 500)
}

// refresh pulls session state into the clock and grid.
func (s *ExamScreen) refresh() {
	if s.session.Current() != s.shown {
		s.loadQuestion()
	}
	s.clock.Remaining = s.session.Remaining()
	s.grid.SetItems(s.renderer.Render(navigator.Input{
		Total:    s.session.Total(),
		Current:  s.session.Current(),
		Answered: s.session.Answered(),
	}))
}

func (s *ExamScreen) currentKind() ex.QuestionKind {
	return s.session.Exam().Questions[s.shown].Kind
}

func (s *ExamScreen) warn(err error) {
	s.warnings = append(s.warnings, err.Error())
	if len(s.warnings) > maxWarnings {
		s.warnings = s.warnings[len(s.warnings)-maxWarnings:]
	}
}
