// Package countdown implements the exam countdown: a controller that counts
// a whole-second budget down to zero, reporting every tick and signalling
// expiry exactly once.
package countdown

import (
	"sync"
	"time"
)

// DefaultPeriod is the nominal tick period.
const DefaultPeriod = time.Second

// Callbacks receive the controller's notifications. Either may be nil.
type Callbacks struct {
	// OnTimeUpdate is called on every tick with the new remaining seconds,
	// including the tick that reaches zero.
	OnTimeUpdate func(remaining int)

	// OnTimeUp is called exactly once when the budget is exhausted.
	OnTimeUp func()
}

// State is the lifecycle phase of a Controller.
type State int

const (
	StateIdle      State = iota // Created, not started
	StateRunning                // Ticking
	StateExpired                // Reached zero, expiry delivered
	StateCancelled              // Torn down before expiry
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler that drives ticks. Defaults to
// TickerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithPeriod overrides the tick period.
func WithPeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.period = d
		}
	}
}

// Controller owns the remaining time of one countdown.
//
// Ticks are serialized by deliverMu, so at most one tick is in flight and
// notifications arrive in tick order. State changes are guarded by mu, which
// is never held while a callback runs; Cancel can therefore be called from a
// callback.
type Controller struct {
	mu        sync.Mutex
	deliverMu sync.Mutex

	initial   int
	remaining int
	state     State
	period    time.Duration
	sched     Scheduler
	stop      func()
	cb        Callbacks
}

// New creates an idle controller with the given budget in seconds.
func New(initialSeconds int, cb Callbacks, opts ...Option) *Controller {
	c := &Controller{
		initial:   initialSeconds,
		remaining: initialSeconds,
		period:    DefaultPeriod,
		sched:     TickerScheduler{},
		cb:        cb,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.remaining < 0 {
		c.remaining = 0
	}
	return c
}

// Start begins ticking. With a non-positive budget it delivers expiry
// immediately, once, and never ticks. Start is a no-op unless the controller
// is idle.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	if c.initial <= 0 {
		c.remaining = 0
		c.state = StateExpired
		c.mu.Unlock()

		c.deliverMu.Lock()
		defer c.deliverMu.Unlock()
		if c.cb.OnTimeUp != nil {
			c.cb.OnTimeUp()
		}
		return
	}
	c.state = StateRunning
	c.mu.Unlock()

	// The scheduler may fire, or Cancel may run, before stop is stored.
	stop := c.sched.Start(c.period, c.tick)

	c.mu.Lock()
	if c.state == StateRunning {
		c.stop = stop
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	stop()
}

// tick is the repeating task.
func (c *Controller) tick() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.remaining--
	expired := c.remaining <= 0
	var stop func()
	if expired {
		c.remaining = 0
		c.state = StateExpired
		stop = c.stop
		c.stop = nil
	}
	remaining := c.remaining
	c.mu.Unlock()

	if stop != nil {
		stop()
	}

	if !expired && c.State() != StateRunning {
		return
	}
	if c.cb.OnTimeUpdate != nil {
		c.cb.OnTimeUpdate(remaining)
	}
	if expired && c.cb.OnTimeUp != nil {
		c.cb.OnTimeUp()
	}
}

// Cancel stops the countdown. It is idempotent, returns immediately and
// may be called from inside a callback. A tick that starts after Cancel
// delivers nothing; once expiry has been committed Cancel has no effect.
// A tick already past its state check may still deliver one update after
// Cancel returns. Use Stop, or follow Cancel with Wait, when no callback
// may run afterwards.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state == StateExpired || c.state == StateCancelled {
		c.mu.Unlock()
		return
	}
	c.state = StateCancelled
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Wait blocks until no tick is being delivered. Called after Cancel it
// guarantees no callback runs again. It must not be called from a callback.
func (c *Controller) Wait() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
}

// Stop cancels the countdown and waits for any in-flight tick.
func (c *Controller) Stop() {
	c.Cancel()
	c.Wait()
}

// Remaining returns the remaining seconds, never negative.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Initial returns the starting budget as supplied.
func (c *Controller) Initial() int {
	return c.initial
}

// Elapsed returns the seconds consumed so far.
func (c *Controller) Elapsed() int {
	if c.initial <= 0 {
		return 0
	}
	return c.initial - c.Remaining()
}

// Progress returns the consumed fraction of the budget in [0, 1].
func (c *Controller) Progress() float64 {
	if c.initial <= 0 {
		return 1
	}
	return float64(c.Elapsed()) / float64(c.initial)
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done reports whether the controller has expired or been cancelled.
func (c *Controller) Done() bool {
	s := c.State()
	return s == StateExpired || s == StateCancelled
}
