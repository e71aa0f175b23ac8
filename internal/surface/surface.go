package surface

import (
	"image"
	"image/color"
	"sync"
)

// ContextKind names the drawing context a surface is asked for.
type ContextKind string

const Context2D ContextKind = "2d"

// Surface is a drawable target supplied by the hosting layer.
type Surface interface {
	// Bounds returns the pixel dimensions draw functions clear and redraw against.
	Bounds() image.Rectangle
	// Context returns a drawing context of the given kind, or an error if the
	// surface cannot provide one.
	Context(kind ContextKind) (Context, error)
	Close() error
}

// Context is the interface used to issue drawing operations against a Surface.
type Context interface {
	// Size returns the logical canvas size (in pixels).
	Size() (width int, height int)

	Clear(c color.Color)
	FillRect(rect image.Rectangle, c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	// DrawImage scales img into rect using nearest neighbor sampling.
	DrawImage(img image.Image, rect image.Rectangle)

	// Present pushes the drawn frame to the underlying surface.
	Present() error
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

// Ref is the nullable handle to a surface. The hosting layer owns it and
// attaches exactly one surface at a time; loops only observe it.
type Ref struct {
	mu      sync.RWMutex
	surface Surface
	gen     uint64
}

// Attach makes s the current surface. Attaching nil is the same as Detach.
func (ref *Ref) Attach(s Surface) {
	ref.mu.Lock()
	ref.surface = s
	ref.gen++
	ref.mu.Unlock()
}

// Detach clears the handle. The surface itself is not closed.
func (ref *Ref) Detach() {
	ref.Attach(nil)
}

// Current returns the attached surface (nil when detached) and the
// generation of the handle. The generation changes on every attach/detach.
func (ref *Ref) Current() (Surface, uint64) {
	if ref == nil {
		return nil, 0
	}
	ref.mu.RLock()
	defer ref.mu.RUnlock()
	return ref.surface, ref.gen
}

// Binding gives validated access to the surface behind a Ref and its context.
type Binding struct {
	Ref *Ref
}

// Surface returns the attached surface or a SurfaceUnavailable error.
func (b Binding) Surface() (Surface, error) {
	s, _ := b.Ref.Current()
	if s == nil {
		return nil, &Error{Kind: SurfaceUnavailable, Op: "surface"}
	}
	return s, nil
}

// Context returns the 2D drawing context of the attached surface.
func (b Binding) Context() (Context, error) {
	s, err := b.Surface()
	if err != nil {
		return nil, err
	}
	ctx, err := s.Context(Context2D)
	if err != nil {
		return nil, &Error{Kind: ContextUnavailable, Op: "context", Err: err}
	}
	if ctx == nil {
		return nil, &Error{Kind: ContextUnavailable, Op: "context"}
	}
	return ctx, nil
}
