package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdesk/internal/ui/theme"
)

// ChoiceList is a single-answer option selector. Options are labelled A, B,
// C and so on; pressing a label's letter chooses it directly.
type ChoiceList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
}

// NewChoiceList creates a selector. chosen is the option already answered,
// or "" for none.
func NewChoiceList(options []string, chosen string) ChoiceList {
	c := ChoiceList{Options: options, Chosen: -1}
	for i, opt := range options {
		if opt == chosen {
			c.Chosen = i
			c.Cursor = i
			break
		}
	}
	return c
}

// Label returns the letter shown for option i.
func Label(i int) string {
	return string(rune('A' + i))
}

// Update moves the cursor or chooses an option. It reports whether the
// chosen option changed.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, false
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, false
	case "enter", "space", " ":
		return c.choose(c.Cursor)
	}

	if len(key) == 1 {
		i := int(strings.ToUpper(key)[0]) - 'A'
		if i >= 0 && i < len(c.Options) {
			c.Cursor = i
			return c.choose(i)
		}
	}
	return c, false
}

func (c ChoiceList) choose(i int) (ChoiceList, bool) {
	if c.Chosen == i {
		return c, false
	}
	c.Chosen = i
	return c, true
}

// Value returns the chosen option text, or "" when nothing is chosen.
func (c ChoiceList) Value() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, Label(i), opt)

		switch {
		case i == c.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
