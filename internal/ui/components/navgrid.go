package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdesk/internal/navigator"
	"github.com/abhisek/examdesk/internal/ui/theme"
)

// cellWidth is the rendered width of one grid cell including its gap.
const cellWidth = 6

// NavGrid shows one numbered cell per question and lets the learner jump to
// any of them. Selection goes through the navigator renderer; the grid never
// changes the current question itself.
type NavGrid struct {
	Renderer navigator.Renderer
	Items    []navigator.Item
	Cursor   int
	Focused  bool
	Width    int
}

// NewNavGrid creates an unfocused grid that reports selections to r.
func NewNavGrid(r navigator.Renderer) NavGrid {
	return NavGrid{Renderer: r}
}

// SetItems replaces the derived items. While unfocused the cursor follows
// the current question.
func (g *NavGrid) SetItems(items []navigator.Item) {
	g.Items = items
	if !g.Focused {
		for i, it := range items {
			if it.Status == navigator.StatusCurrent {
				g.Cursor = i
				break
			}
		}
	}
	g.Cursor = min(max(g.Cursor, 0), max(len(items)-1, 0))
}

// Columns returns how many cells fit on one row.
func (g NavGrid) Columns() int {
	if g.Width <= 0 {
		return 10
	}
	return max(g.Width/cellWidth, 1)
}

// Update moves the cursor and handles selection. It reports whether a
// navigation intent was emitted.
func (g NavGrid) Update(msg tea.Msg) (NavGrid, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !g.Focused || len(g.Items) == 0 {
		return g, false
	}

	cols := g.Columns()
	last := len(g.Items) - 1

	switch kmsg.String() {
	case "left", "h":
		g.Cursor = max(g.Cursor-1, 0)
	case "right", "l":
		g.Cursor = min(g.Cursor+1, last)
	case "up", "k":
		if g.Cursor-cols >= 0 {
			g.Cursor -= cols
		}
	case "down", "j":
		if g.Cursor+cols <= last {
			g.Cursor += cols
		}
	case "home":
		g.Cursor = 0
	case "end":
		g.Cursor = last
	case "enter", "space", " ":
		it := g.Items[g.Cursor]
		return g, g.Renderer.Select(it.Number, len(g.Items))
	}
	return g, false
}

// View renders the grid and a one-line legend.
func (g NavGrid) View() string {
	if len(g.Items) == 0 {
		return theme.Hint.Render("no questions")
	}

	cols := g.Columns()
	var rows []string
	var row []string
	for i, it := range g.Items {
		row = append(row, g.renderCell(i, it))
		if len(row) == cols || i == len(g.Items)-1 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}

	s := navigator.Summarize(g.Items, nil)
	legend := fmt.Sprintf("%s current  %s answered %d  %s unanswered %d",
		theme.CellCurrent.Render("  "),
		theme.CellAnswered.Render("  "),
		s.Answered,
		theme.CellUnanswered.Render("  "),
		s.Unanswered,
	)

	return strings.Join(rows, "\n") + "\n\n" + legend
}

func (g NavGrid) renderCell(i int, it navigator.Item) string {
	var style lipgloss.Style
	switch it.Status {
	case navigator.StatusCurrent:
		style = theme.CellCurrent
	case navigator.StatusAnswered:
		style = theme.CellAnswered
	default:
		style = theme.CellUnanswered
	}

	label := fmt.Sprintf("%3d ", it.Number)
	if g.Focused && i == g.Cursor {
		style = style.Underline(true)
		label = fmt.Sprintf("[%2d]", it.Number)
	}
	return style.Render(label)
}
