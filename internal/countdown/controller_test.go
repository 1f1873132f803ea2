package countdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects callback invocations in order.
type recorder struct {
	mu      sync.Mutex
	updates []int
	timeUps int
	events  []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnTimeUpdate: func(remaining int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.updates = append(r.updates, remaining)
			r.events = append(r.events, "update")
		},
		OnTimeUp: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.timeUps++
			r.events = append(r.events, "timeup")
		},
	}
}

func (r *recorder) snapshot() ([]int, int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.updates...), r.timeUps, append([]string(nil), r.events...)
}

func newManual(t *testing.T, initial int) (*Controller, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(initial, rec.callbacks(), WithScheduler(sched))
	return c, sched, rec
}

func TestController_CountsDownToExpiry(t *testing.T) {
	for _, initial := range []int{1, 2, 5, 61} {
		c, sched, rec := newManual(t, initial)
		c.Start()

		for i := 0; i < initial; i++ {
			require.True(t, sched.Fire(), "tick %d should fire", i+1)
		}

		updates, timeUps, events := rec.snapshot()
		require.Len(t, updates, initial)
		for i, v := range updates {
			assert.Equal(t, initial-i-1, v)
		}
		assert.Equal(t, 0, updates[len(updates)-1])
		assert.Equal(t, 1, timeUps)
		assert.Equal(t, "timeup", events[len(events)-1], "expiry must be the last notification")
		assert.Equal(t, StateExpired, c.State())
		assert.Equal(t, 0, c.Remaining())
		assert.False(t, sched.Active(), "schedule should stop at expiry")
	}
}

func TestController_NoTicksAfterExpiry(t *testing.T) {
	c, sched, rec := newManual(t, 2)
	c.Start()
	sched.Fire()
	sched.Fire()

	assert.False(t, sched.Fire())
	c.tick()

	updates, timeUps, _ := rec.snapshot()
	assert.Len(t, updates, 2)
	assert.Equal(t, 1, timeUps)
	assert.Equal(t, 0, c.Remaining())
}

func TestController_NonPositiveInitialExpiresImmediately(t *testing.T) {
	for _, initial := range []int{0, -1, -3600} {
		c, sched, rec := newManual(t, initial)
		c.Start()

		updates, timeUps, _ := rec.snapshot()
		assert.Empty(t, updates, "initial %d", initial)
		assert.Equal(t, 1, timeUps, "initial %d", initial)
		assert.False(t, sched.Active(), "no tick loop for initial %d", initial)
		assert.Equal(t, 0, c.Remaining())

		c.Start()
		_, timeUps, _ = rec.snapshot()
		assert.Equal(t, 1, timeUps, "second Start must not re-fire")
	}
}

func TestController_CancelStopsNotifications(t *testing.T) {
	c, sched, rec := newManual(t, 5)
	c.Start()
	sched.Fire()
	sched.Fire()

	c.Cancel()
	c.Cancel()

	assert.False(t, sched.Fire())
	c.tick()

	updates, timeUps, _ := rec.snapshot()
	assert.Equal(t, []int{4, 3}, updates)
	assert.Equal(t, 0, timeUps)
	assert.Equal(t, StateCancelled, c.State())
	assert.Equal(t, 3, c.Remaining())
}

func TestController_StopWaitsForInFlightTick(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sched := NewManualScheduler()
	c := New(5, Callbacks{
		OnTimeUpdate: func(int) {
			close(entered)
			<-release
		},
	}, WithScheduler(sched))
	c.Start()

	go sched.Fire()
	<-entered

	stopped := make(chan struct{})
	go func() {
		c.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a callback was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the callback finished")
	}
	assert.Equal(t, StateCancelled, c.State())
	assert.False(t, sched.Fire())
}

func TestController_CancelBeforeStart(t *testing.T) {
	c, sched, rec := newManual(t, 3)
	c.Cancel()
	c.Start()

	assert.False(t, sched.Fire())
	updates, timeUps, _ := rec.snapshot()
	assert.Empty(t, updates)
	assert.Zero(t, timeUps)
}

func TestController_CancelFromCallback(t *testing.T) {
	sched := NewManualScheduler()
	var c *Controller
	var updates []int
	timeUps := 0
	c = New(10, Callbacks{
		OnTimeUpdate: func(remaining int) {
			updates = append(updates, remaining)
			if remaining == 8 {
				c.Cancel()
			}
		},
		OnTimeUp: func() { timeUps++ },
	}, WithScheduler(sched))

	c.Start()
	for i := 0; i < 5; i++ {
		sched.Fire()
	}

	assert.Equal(t, []int{9, 8}, updates)
	assert.Zero(t, timeUps)
}

func TestController_CancelAfterExpiryIsNoop(t *testing.T) {
	c, sched, rec := newManual(t, 1)
	c.Start()
	sched.Fire()
	c.Cancel()

	_, timeUps, _ := rec.snapshot()
	assert.Equal(t, 1, timeUps)
	assert.Equal(t, StateExpired, c.State())
}

func TestController_RemainingNeverNegative(t *testing.T) {
	sched := NewManualScheduler()
	var seen []int
	c := New(3, Callbacks{
		OnTimeUpdate: func(remaining int) { seen = append(seen, remaining) },
	}, WithScheduler(sched))
	c.Start()
	for i := 0; i < 10; i++ {
		sched.Fire()
		c.tick()
		assert.GreaterOrEqual(t, c.Remaining(), 0)
	}
	for _, v := range seen {
		assert.GreaterOrEqual(t, v, 0)
	}
}

func TestController_Progress(t *testing.T) {
	c, sched, _ := newManual(t, 4)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0.0, c.Progress())

	c.Start()
	sched.Fire()
	assert.Equal(t, 1, c.Elapsed())
	assert.InDelta(t, 0.25, c.Progress(), 1e-9)

	for sched.Fire() {
	}
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)
	assert.True(t, c.Done())
}

func TestController_WithPeriod(t *testing.T) {
	sched := NewManualScheduler()
	c := New(5, Callbacks{}, WithScheduler(sched), WithPeriod(250*time.Millisecond))
	c.Start()
	assert.Equal(t, 250*time.Millisecond, sched.Period())

	c = New(5, Callbacks{}, WithScheduler(sched), WithPeriod(0))
	c.Start()
	assert.Equal(t, DefaultPeriod, sched.Period())
}

func TestController_TickerSchedulerExpires(t *testing.T) {
	done := make(chan struct{})
	var mu sync.Mutex
	var updates []int
	timeUps := 0

	c := New(3, Callbacks{
		OnTimeUpdate: func(remaining int) {
			mu.Lock()
			updates = append(updates, remaining)
			mu.Unlock()
		},
		OnTimeUp: func() {
			mu.Lock()
			timeUps++
			mu.Unlock()
			close(done)
		},
	}, WithPeriod(5*time.Millisecond))
	c.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}
	c.Wait()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2, 1, 0}, updates)
	assert.Equal(t, 1, timeUps)
}

func TestController_TickerSchedulerStopIsFinal(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := New(1000, Callbacks{
		OnTimeUpdate: func(int) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
		OnTimeUp: func() { t.Error("expiry must not fire after cancel") },
	}, WithPeriod(time.Millisecond))
	c.Start()
	time.Sleep(10 * time.Millisecond)

	c.Stop()
	mu.Lock()
	after := calls
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, calls, "no callbacks after Stop returns")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "expired", StateExpired.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "unknown", State(42).String())
}
