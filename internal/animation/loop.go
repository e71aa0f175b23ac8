package animation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rook-computer/lifedesk/internal/surface"
)

var (
	ErrUnmounted = errors.New("animation: loop unmounted")
	ErrNoDraw    = errors.New("animation: no draw function")
)

// DrawFunc draws one frame. frame starts at 1 for every activation.
type DrawFunc func(ctx surface.Context, frame int) error

// Draw gives a DrawFunc a stable identity. The loop compares *Draw pointers,
// never the functions behind them: rendering with a new *Draw restarts the
// loop even when it wraps the same behavior, and reusing one *Draw across
// renders keeps the running activation.
type Draw struct {
	fn DrawFunc
}

func NewDraw(fn DrawFunc) *Draw { return &Draw{fn: fn} }

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

type Option func(*Loop)

func WithLogger(logger Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithErrorHandler sets the function receiving draw and present errors.
// The failing activation has already stopped when it is called.
func WithErrorHandler(fn func(err error)) Option {
	return func(l *Loop) { l.onError = fn }
}

// Loop binds a draw function to the surface attached to its Ref and calls it
// once per scheduler frame. It follows a render/commit cycle: Render records
// the draw function and hands out the surface handle, Commit starts, restarts
// or keeps the running activation.
//
// A Loop is not safe for concurrent use. All calls must happen on the
// scheduler's goroutine.
type Loop struct {
	sched   Scheduler
	ref     *surface.Ref
	logger  Logger
	onError func(err error)

	draw *Draw

	committed bool
	unmounted bool
	deps      deps
	active    *activation
}

type deps struct {
	draw *Draw
	gen  uint64
}

// activation is one run of the loop, from start to stop.
type activation struct {
	draw    *Draw
	ctx     surface.Context
	frame   int
	token   FrameID
	pending bool
	stopped bool
}

func New(sched Scheduler, opts ...Option) *Loop {
	l := &Loop{sched: sched, ref: &surface.Ref{}, logger: noopLogger{}}
	for _, opt := range opts {
		opt(l)
	}
	if l.onError == nil {
		l.onError = func(err error) { l.logger.Errorf("loop", "activation stopped: %v", err) }
	}
	return l
}

// Render records draw for the next Commit and returns the surface handle the
// host attaches its surface to. The handle is the same for the life of the loop.
func (l *Loop) Render(draw *Draw) *surface.Ref {
	l.draw = draw
	return l.ref
}

// Ref returns the surface handle.
func (l *Loop) Ref() *surface.Ref { return l.ref }

// Commit applies the last Render. When nothing changed since the previous
// Commit it does nothing. Otherwise the current activation is torn down and a
// new one started against the current draw function and surface. Errors from
// acquiring the drawing context are returned and leave the loop idle.
func (l *Loop) Commit() error {
	if l.unmounted {
		return ErrUnmounted
	}
	_, gen := l.ref.Current()
	next := deps{draw: l.draw, gen: gen}
	if l.committed && next == l.deps {
		return nil
	}
	l.committed = true
	l.deps = next
	l.deactivate()
	return l.activate()
}

// Unmount stops the loop for good.
func (l *Loop) Unmount() {
	l.deactivate()
	l.unmounted = true
}

// Frame returns the frame counter of the current activation, 0 when idle.
func (l *Loop) Frame() int {
	if l.active == nil {
		return 0
	}
	return l.active.frame
}

// Running reports whether an activation is ticking.
func (l *Loop) Running() bool {
	return l.active != nil && !l.active.stopped
}

func (l *Loop) activate() error {
	if l.draw == nil || l.draw.fn == nil {
		return ErrNoDraw
	}
	ctx, err := surface.Binding{Ref: l.ref}.Context()
	if err != nil {
		return fmt.Errorf("animation: activate: %w", err)
	}
	a := &activation{draw: l.draw, ctx: ctx}
	l.active = a
	l.schedule(a)
	l.logger.Infof("loop", "activation started")
	return nil
}

func (l *Loop) deactivate() {
	a := l.active
	if a == nil {
		return
	}
	l.active = nil
	a.stopped = true
	if a.pending {
		l.sched.CancelFrame(a.token)
		a.pending = false
	}
	l.logger.Infof("loop", "activation stopped after %d frames", a.frame)
}

func (l *Loop) schedule(a *activation) {
	a.token = l.sched.RequestFrame(func(now time.Time) { l.tick(a, now) })
	a.pending = true
}

func (l *Loop) tick(a *activation, now time.Time) {
	a.pending = false
	if a.stopped {
		return
	}
	a.frame++
	if err := a.draw.fn(a.ctx, a.frame); err != nil {
		l.fail(a, fmt.Errorf("draw frame %d: %w", a.frame, err))
		return
	}
	if err := a.ctx.Present(); err != nil {
		l.fail(a, fmt.Errorf("present frame %d: %w", a.frame, err))
		return
	}
	// The draw function may have unmounted or restarted the loop.
	if a.stopped {
		return
	}
	l.schedule(a)
}

func (l *Loop) fail(a *activation, err error) {
	a.stopped = true
	l.onError(err)
}
