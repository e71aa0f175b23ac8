package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// LoadFace parses an embedded font at the given point size. It prefers the
// opentype parser, then freetype's truetype parser, and falls back to
// basicfont.Face7x13 when neither can read the data.
func LoadFace(data []byte, size float64, logger faceLogger) font.Face {
	if size <= 0 {
		size = 16
	}
	fnt, err := opentype.Parse(data)
	if err == nil {
		face, ferr := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 96, Hinting: font.HintingFull})
		if ferr == nil {
			if logger != nil {
				logger.Infof("font", "loaded OTF font at %.0fpt", size)
			}
			return face
		}
		err = ferr
	}
	if logger != nil {
		logger.Errorf("font", "opentype face failed, trying truetype: %v", err)
	}
	tt, terr := truetype.Parse(data)
	if terr != nil {
		if logger != nil {
			logger.Errorf("font", "truetype parse failed, using basicfont: %v", terr)
		}
		return basicfont.Face7x13
	}
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 96, Hinting: font.HintingFull})
}

// rgbaContext draws into an offscreen RGBA canvas and hands it to present.
type rgbaContext struct {
	img     *image.RGBA
	face    font.Face
	present func(img *image.RGBA) error
}

func newRGBAContext(img *image.RGBA, face font.Face, present func(img *image.RGBA) error) *rgbaContext {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &rgbaContext{img: img, face: face, present: present}
}

func (c *rgbaContext) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *rgbaContext) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *rgbaContext) FillRect(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Over)
}

func (c *rgbaContext) MeasureText(text string, style TextStyle) TextMetrics {
	metrics := c.face.Metrics()
	drawer := &font.Drawer{Face: c.face}
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      drawer.MeasureString(text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (c *rgbaContext) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := c.MeasureText(text, style)
	col := style.Color
	if col == nil {
		col = color.Black
	}
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

func (c *rgbaContext) DrawImage(img image.Image, rect image.Rectangle) {
	if img == nil || rect.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, rect, img, img.Bounds(), xdraw.Over, nil)
}

func (c *rgbaContext) Present() error {
	if c.present == nil {
		return nil
	}
	return c.present(c.img)
}
