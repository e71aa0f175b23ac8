package animation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifedesk/internal/surface"
)

func recorder(frames *[]int) *Draw {
	return NewDraw(func(ctx surface.Context, n int) error {
		*frames = append(*frames, n)
		return nil
	})
}

func ticks(clock *FrameClock, n int) {
	now := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		now = now.Add(clock.Interval)
		clock.Tick(now)
	}
}

func mountedLoop(t *testing.T, clock *FrameClock, draw *Draw) (*Loop, *surface.Canvas) {
	t.Helper()
	loop := New(clock)
	canvas := surface.NewCanvas(16, 16, nil)
	loop.Render(draw).Attach(canvas)
	require.NoError(t, loop.Commit())
	return loop, canvas
}

func TestLoopCountsFramesUntilUnmount(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	loop, canvas := mountedLoop(t, clock, recorder(&frames))

	ticks(clock, 3)
	loop.Unmount()
	ticks(clock, 5)

	assert.Equal(t, []int{1, 2, 3}, frames)
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, uint64(3), canvas.Presented())
	assert.ErrorIs(t, loop.Commit(), ErrUnmounted)
}

func TestLoopUnmountBeforeFirstTick(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	loop, _ := mountedLoop(t, clock, recorder(&frames))
	assert.Equal(t, 1, clock.Pending())

	assert.NotPanics(t, loop.Unmount)
	assert.NotPanics(t, loop.Unmount)
	ticks(clock, 2)

	assert.Empty(t, frames)
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopActivateWithoutSurface(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	loop := New(clock)
	loop.Render(recorder(&frames))

	err := loop.Commit()
	require.ErrorIs(t, err, surface.ErrSurfaceUnavailable)
	assert.False(t, loop.Running())
	assert.Equal(t, 0, clock.Pending())

	ticks(clock, 2)
	assert.Empty(t, frames)
}

type noContextSurface struct{ *surface.Canvas }

func (noContextSurface) Context(surface.ContextKind) (surface.Context, error) {
	return nil, surface.ErrUnsupportedContext
}

func TestLoopActivateWithoutContext(t *testing.T) {
	clock := NewFrameClock(60)
	loop := New(clock)
	var frames []int
	loop.Render(recorder(&frames)).Attach(noContextSurface{surface.NewCanvas(4, 4, nil)})

	require.ErrorIs(t, loop.Commit(), surface.ErrContextUnavailable)
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopSwapDrawResetsCounter(t *testing.T) {
	clock := NewFrameClock(60)
	var oldFrames, newFrames []int
	loop, _ := mountedLoop(t, clock, recorder(&oldFrames))
	ticks(clock, 2)

	loop.Render(recorder(&newFrames))
	require.NoError(t, loop.Commit())
	assert.Equal(t, 0, loop.Frame())
	ticks(clock, 2)

	assert.Equal(t, []int{1, 2}, oldFrames)
	assert.Equal(t, []int{1, 2}, newFrames)
	assert.Equal(t, 1, clock.Pending())
}

func TestLoopSameDrawKeepsActivation(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	draw := recorder(&frames)
	loop, _ := mountedLoop(t, clock, draw)
	ticks(clock, 2)

	loop.Render(draw)
	require.NoError(t, loop.Commit())
	ticks(clock, 2)

	assert.Equal(t, []int{1, 2, 3, 4}, frames)
}

func TestLoopEquivalentDrawRestarts(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	fn := func(ctx surface.Context, n int) error {
		frames = append(frames, n)
		return nil
	}
	loop, _ := mountedLoop(t, clock, NewDraw(fn))
	ticks(clock, 2)

	loop.Render(NewDraw(fn))
	require.NoError(t, loop.Commit())
	ticks(clock, 1)

	assert.Equal(t, []int{1, 2, 1}, frames)
}

func TestLoopSurfaceSwapRestarts(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	loop, first := mountedLoop(t, clock, recorder(&frames))
	ticks(clock, 2)

	second := surface.NewCanvas(16, 16, nil)
	loop.Ref().Attach(second)
	require.NoError(t, loop.Commit())
	ticks(clock, 1)

	assert.Equal(t, []int{1, 2, 1}, frames)
	assert.Equal(t, uint64(2), first.Presented())
	assert.Equal(t, uint64(1), second.Presented())
}

func TestLoopSurfaceDetachStops(t *testing.T) {
	clock := NewFrameClock(60)
	var frames []int
	loop, _ := mountedLoop(t, clock, recorder(&frames))
	ticks(clock, 1)

	loop.Ref().Detach()
	require.ErrorIs(t, loop.Commit(), surface.ErrSurfaceUnavailable)
	ticks(clock, 3)

	assert.Equal(t, []int{1}, frames)
	assert.False(t, loop.Running())
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopDrawErrorHalts(t *testing.T) {
	clock := NewFrameClock(60)
	boom := errors.New("boom")
	var frames []int
	var reported []error
	loop := New(clock, WithErrorHandler(func(err error) { reported = append(reported, err) }))
	loop.Render(NewDraw(func(ctx surface.Context, n int) error {
		frames = append(frames, n)
		if n == 2 {
			return boom
		}
		return nil
	})).Attach(surface.NewCanvas(4, 4, nil))
	require.NoError(t, loop.Commit())

	ticks(clock, 5)

	assert.Equal(t, []int{1, 2}, frames)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
	assert.False(t, loop.Running())
	assert.Equal(t, 0, clock.Pending())

	// Unchanged deps do not retry.
	require.NoError(t, loop.Commit())
	ticks(clock, 1)
	assert.Equal(t, []int{1, 2}, frames)
}

func TestLoopDrawPanicPropagates(t *testing.T) {
	clock := NewFrameClock(60)
	loop := New(clock)
	loop.Render(NewDraw(func(ctx surface.Context, n int) error {
		panic("draw exploded")
	})).Attach(surface.NewCanvas(4, 4, nil))
	require.NoError(t, loop.Commit())

	assert.PanicsWithValue(t, "draw exploded", func() { ticks(clock, 1) })
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopUnmountFromDraw(t *testing.T) {
	clock := NewFrameClock(60)
	var loop *Loop
	var frames []int
	loop = New(clock)
	loop.Render(NewDraw(func(ctx surface.Context, n int) error {
		frames = append(frames, n)
		if n == 2 {
			loop.Unmount()
		}
		return nil
	})).Attach(surface.NewCanvas(4, 4, nil))
	require.NoError(t, loop.Commit())

	ticks(clock, 4)
	assert.Equal(t, []int{1, 2}, frames)
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopNoDraw(t *testing.T) {
	loop := New(NewFrameClock(60))
	loop.Ref().Attach(surface.NewCanvas(4, 4, nil))
	require.ErrorIs(t, loop.Commit(), ErrNoDraw)
}
