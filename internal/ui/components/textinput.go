package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdesk/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with ExamDesk styling and remembers the
// last saved answer so it can show whether edits are pending.
type TextInput struct {
	Model textinput.Model
	saved string
}

// NewTextInput creates a focused text input holding the saved value.
func NewTextInput(placeholder, saved string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	ti.SetValue(saved)
	ti.Focus()

	return TextInput{Model: ti, saved: saved}
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input with a saved or pending marker.
func (t TextInput) View() string {
	view := t.Model.View()
	switch {
	case t.Dirty():
		view += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("• unsaved")
	case t.saved != "":
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Dirty reports whether the value differs from the saved answer.
func (t TextInput) Dirty() bool {
	return strings.TrimSpace(t.Model.Value()) != t.saved
}

// MarkSaved records the value as stored.
func (t *TextInput) MarkSaved() {
	t.saved = strings.TrimSpace(t.Model.Value())
	t.Model.SetValue(t.saved)
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}
