//go:build !linux

package system

import "errors"

var errNoConsole = errors.New("console mode switching is only supported on linux")

func (c *Console) EnterGraphics() error {
	c.log(errNoConsole, "KD_GRAPHICS")
	return errNoConsole
}

func (c *Console) Restore() error { return nil }
