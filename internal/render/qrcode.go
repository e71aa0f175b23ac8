package render

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// ScanTheme is black on white, for codes served to other devices.
var ScanTheme = Theme{
	Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Text:       color.RGBA{A: 0xFF},
}

// QRCode describes how a payload is encoded for the overlay and the web API.
type QRCode struct {
	Payload string
	SizePx  int
	Theme   Theme
	// Border keeps the quiet zone around the code. The overlay drops it and
	// relies on its own padding.
	Border bool
}

func (q QRCode) encode() (*qrcode.QRCode, int, error) {
	size := q.SizePx
	if size <= 0 {
		size = defaultQRCodeSizePx
	}
	code, err := qrcode.New(q.Payload, qrcode.Medium)
	if err != nil {
		return nil, 0, err
	}
	code.ForegroundColor = q.Theme.Text
	code.BackgroundColor = q.Theme.Background
	code.DisableBorder = !q.Border
	return code, size, nil
}

// Image returns the code as an image. An empty payload yields (nil, nil).
func (q QRCode) Image() (image.Image, error) {
	if q.Payload == "" {
		return nil, nil
	}
	code, size, err := q.encode()
	if err != nil {
		return nil, err
	}
	return code.Image(size), nil
}

// PNG returns the code as PNG bytes.
func (q QRCode) PNG() ([]byte, error) {
	code, size, err := q.encode()
	if err != nil {
		return nil, err
	}
	return code.PNG(size)
}
