//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Keyboard watches Linux evdev devices under /dev/input/event* and emits
// actions for the app's key bindings.
//
// It is best-effort: if no input devices are available, it logs and emits nothing.
type Keyboard struct {
	Logger Logger
	Glob   string

	ch     chan Action
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewKeyboard(logger Logger) *Keyboard {
	return &Keyboard{Logger: logger, Glob: "/dev/input/event*", ch: make(chan Action, 16)}
}

func (k *Keyboard) Events() <-chan Action { return k.ch }

func (k *Keyboard) Start(ctx context.Context) error {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob(k.Glob)
	if err != nil || len(paths) == 0 {
		if k.Logger != nil {
			k.Logger.Infof("input", "no evdev devices found")
		}
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	for _, path := range paths {
		k.wg.Add(1)
		go func(p string) {
			defer k.wg.Done()
			k.readDevice(readCtx, p, tvSize, eventSize)
		}(path)
	}
	return nil
}

func (k *Keyboard) readDevice(ctx context.Context, path string, tvSize, eventSize int) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	var mapper keyMapper
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			if typ != evKey {
				continue
			}
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			action, ok := mapper.translate(code, value)
			if !ok {
				continue
			}
			select {
			case k.ch <- action:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stop ends all device readers and closes the events channel.
func (k *Keyboard) Stop() error {
	k.once.Do(func() {
		if k.cancel != nil {
			k.cancel()
		}
		k.wg.Wait()
		close(k.ch)
	})
	return nil
}
