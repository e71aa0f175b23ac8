package animation

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a requested frame callback so it can be cancelled
// before it fires.
type FrameID uint64

// Scheduler runs callbacks at the next display refresh.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	// CancelFrame drops a pending callback. Unknown or already fired ids are ignored.
	CancelFrame(id FrameID)
}

const DefaultRefreshRate = 60

// FrameClock is a cooperative, single-goroutine frame scheduler. Run owns the
// UI goroutine: every refresh it fires the frame callbacks requested before
// that refresh, in request order. Callbacks requested while a tick is running
// wait for the next one. Post queues work to run on the same goroutine
// between ticks.
type FrameClock struct {
	Interval time.Duration

	mu      sync.Mutex
	nextID  FrameID
	pending map[FrameID]func(time.Time)
	order   []FrameID
	tasks   []func()
	wake    chan struct{}
}

// NewFrameClock returns a clock ticking refreshRate times per second.
func NewFrameClock(refreshRate int) *FrameClock {
	if refreshRate <= 0 {
		refreshRate = DefaultRefreshRate
	}
	return &FrameClock{
		Interval: time.Second / time.Duration(refreshRate),
		pending:  make(map[FrameID]func(time.Time)),
		wake:     make(chan struct{}, 1),
	}
}

func (c *FrameClock) RequestFrame(fn func(now time.Time)) FrameID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.pending[id] = fn
	c.order = append(c.order, id)
	return id
}

func (c *FrameClock) CancelFrame(id FrameID) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Pending returns the number of frame callbacks waiting for the next tick.
func (c *FrameClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Tick fires the callbacks requested before this call and returns how many ran.
// Run calls it on every refresh; tests call it directly to step frames.
func (c *FrameClock) Tick(now time.Time) int {
	c.mu.Lock()
	batch := c.order
	c.order = nil
	c.mu.Unlock()

	fired := 0
	for _, id := range batch {
		c.mu.Lock()
		fn, ok := c.pending[id]
		delete(c.pending, id)
		c.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		fired++
	}
	return fired
}

// Post queues fn to run on the Run goroutine. It is safe to call from any goroutine.
func (c *FrameClock) Post(fn func()) {
	c.mu.Lock()
	c.tasks = append(c.tasks, fn)
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *FrameClock) runTasks() {
	c.mu.Lock()
	tasks := c.tasks
	c.tasks = nil
	c.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

// Run drives the clock until ctx is done. Posted tasks run before the next tick.
func (c *FrameClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
			c.runTasks()
		case now := <-ticker.C:
			c.runTasks()
			c.Tick(now)
		}
	}
}
