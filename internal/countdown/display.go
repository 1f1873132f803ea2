package countdown

import "fmt"

// Clock is remaining time split into display units.
type Clock struct {
	Hours   int
	Minutes int
	Seconds int
}

// Split breaks remaining seconds into hours, minutes and seconds. Negative
// input is treated as zero.
func Split(remaining int) Clock {
	if remaining < 0 {
		remaining = 0
	}
	return Clock{
		Hours:   remaining / 3600,
		Minutes: (remaining % 3600) / 60,
		Seconds: remaining % 60,
	}
}

// String renders the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
}

// Format renders remaining seconds as HH:MM:SS.
func Format(remaining int) string {
	return Split(remaining).String()
}

// Urgency is a presentation hint derived from remaining time.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyLow
	UrgencyCritical
	UrgencyUrgent
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyCritical:
		return "critical"
	case UrgencyUrgent:
		return "urgent"
	default:
		return "none"
	}
}

// Thresholds holds the urgency cut-offs in seconds. A level applies when the
// remaining time is strictly below its cut-off.
type Thresholds struct {
	Low      int
	Critical int
	Urgent   int
}

// DefaultThresholds returns 30, 10 and 5 minutes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Low:      30 * 60,
		Critical: 10 * 60,
		Urgent:   5 * 60,
	}
}

func (t Thresholds) IsLow(remaining int) bool      { return remaining < t.Low }
func (t Thresholds) IsCritical(remaining int) bool { return remaining < t.Critical }
func (t Thresholds) IsUrgent(remaining int) bool   { return remaining < t.Urgent }

// Level returns the most severe urgency that applies.
func (t Thresholds) Level(remaining int) Urgency {
	switch {
	case t.IsUrgent(remaining):
		return UrgencyUrgent
	case t.IsCritical(remaining):
		return UrgencyCritical
	case t.IsLow(remaining):
		return UrgencyLow
	default:
		return UrgencyNone
	}
}
