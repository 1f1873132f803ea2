package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg fires once per countdown period and drives the manual
// scheduler. The session id lets a screen drop ticks that belong to an
// earlier attempt.
type timerTickMsg struct {
	session string
}

// tickCmd schedules the next countdown tick.
func tickCmd(period time.Duration, session string) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return timerTickMsg{session: session}
	})
}
