package surface

import (
	"image"
	"image/color"
	"sync"

	fb "github.com/gonutz/framebuffer"
	"golang.org/x/image/font"
)

// Framebuffer renders to the Linux framebuffer using an offscreen logical canvas.
type Framebuffer struct {
	fbDev  *fb.Device
	canvas *image.RGBA
	face   font.Face

	mu     sync.Mutex
	last   *image.RGBA
	closed bool
}

// OpenFramebuffer opens the framebuffer device at path (usually /dev/fb0).
// Drawing happens on a width x height canvas which is scaled to the device on Present.
func OpenFramebuffer(path string, width, height int, face font.Face, logger faceLogger) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		bounds := dev.Bounds()
		logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return &Framebuffer{
		fbDev:  dev,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		last:   image.NewRGBA(image.Rect(0, 0, width, height)),
		face:   face,
	}, nil
}

func (f *Framebuffer) Bounds() image.Rectangle { return f.canvas.Bounds() }

func (f *Framebuffer) Context(kind ContextKind) (Context, error) {
	if kind != Context2D {
		return nil, ErrUnsupportedContext
	}
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	return newRGBAContext(f.canvas, f.face, f.blit), nil
}

func (f *Framebuffer) blit(img *image.RGBA) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	blitToFB(f.fbDev, img)
	copy(f.last.Pix, img.Pix)
	return nil
}

// Snapshot returns a copy of the last presented frame at canvas resolution.
func (f *Framebuffer) Snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := image.NewRGBA(f.last.Bounds())
	copy(out.Pix, f.last.Pix)
	return out
}

func (f *Framebuffer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.fbDev.Close()
	return nil
}

// blitToFB copies canvas to the device via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	canvasWidth := canvas.Bounds().Dx()
	canvasHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * canvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * canvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
