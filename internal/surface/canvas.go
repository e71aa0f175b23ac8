package surface

import (
	"image"
	"sync"

	"golang.org/x/image/font"
)

// Canvas is an offscreen surface. Frames are drawn into a back buffer and
// copied to the front buffer on Present, where Snapshot can read them from
// any goroutine.
type Canvas struct {
	face font.Face

	mu        sync.RWMutex
	back      *image.RGBA
	front     *image.RGBA
	presented uint64
	closed    bool
}

func NewCanvas(width, height int, face font.Face) *Canvas {
	rect := image.Rect(0, 0, width, height)
	return &Canvas{face: face, back: image.NewRGBA(rect), front: image.NewRGBA(rect)}
}

func (c *Canvas) Bounds() image.Rectangle { return c.back.Bounds() }

func (c *Canvas) Context(kind ContextKind) (Context, error) {
	if kind != Context2D {
		return nil, ErrUnsupportedContext
	}
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return newRGBAContext(c.back, c.face, c.present), nil
}

func (c *Canvas) present(img *image.RGBA) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	copy(c.front.Pix, img.Pix)
	c.presented++
	return nil
}

// Snapshot returns a copy of the last presented frame.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := image.NewRGBA(c.front.Bounds())
	copy(out.Pix, c.front.Pix)
	return out
}

// Presented returns how many frames have been presented.
func (c *Canvas) Presented() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.presented
}

func (c *Canvas) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}
