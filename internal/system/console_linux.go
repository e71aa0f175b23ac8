//go:build linux

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// EnterGraphics switches the active VT to graphics mode and hides the
// cursor so the framebuffer is not overdrawn by the console.
func (c *Console) EnterGraphics() error {
	err := c.setMode(kdGraphics)
	c.log(err, "KD_GRAPHICS")
	cerr := c.writeVT("\x1b[?25l")
	c.log(cerr, "hide cursor")
	return errors.Join(err, cerr)
}

// Restore shows the cursor and switches the active VT back to text mode.
func (c *Console) Restore() error {
	cerr := c.writeVT("\x1b[?25h")
	c.log(cerr, "show cursor")
	err := c.setMode(kdText)
	c.log(err, "KD_TEXT")
	return errors.Join(cerr, err)
}

func (c *Console) setMode(mode int) error {
	var lastErr error
	for _, p := range c.paths() {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return errors.New("KDSETMODE failed: no console paths")
}

func (c *Console) writeVT(s string) error {
	var lastErr error
	for _, p := range c.paths() {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT failed: %w", lastErr)
	}
	return errors.New("write VT failed: no console paths")
}
