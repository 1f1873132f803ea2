package countdown

import (
	"sync"
	"time"
)

// Scheduler runs a repeating task at a fixed period until the returned stop
// function is called. Stop must be idempotent and safe to call from inside
// the task.
type Scheduler interface {
	Start(period time.Duration, task func()) (stop func())
}

// TickerScheduler fires the task from a dedicated goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

var _ Scheduler = TickerScheduler{}

func (TickerScheduler) Start(period time.Duration, task func()) func() {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick and a stop can be ready together; stop wins.
				select {
				case <-done:
					return
				default:
				}
				task()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// ManualScheduler never fires on its own. An event loop (or a test) calls
// Fire once per elapsed period. Fires after stop are dropped, which lets a
// loop ignore tick messages that were already queued when the schedule ended.
type ManualScheduler struct {
	mu     sync.Mutex
	gen    int
	task   func()
	period time.Duration
	active bool
}

var _ Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler creates an idle manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Start(period time.Duration, task func()) func() {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.task = task
	m.period = period
	m.active = true
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		m.active = false
		m.task = nil
	}
}

// Fire runs the scheduled task once. It reports false when nothing is
// scheduled.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	task := m.task
	active := m.active
	m.mu.Unlock()

	if !active || task == nil {
		return false
	}
	task()
	return true
}

// Active reports whether a schedule is running.
func (m *ManualScheduler) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Period returns the period of the current (or last) schedule.
func (m *ManualScheduler) Period() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}
