package input

import (
	"context"
	"sync"
)

type Action string

const (
	Quit     Action = "quit"
	Toggle   Action = "toggle"
	Reset    Action = "reset"
	PanLeft  Action = "pan-left"
	PanRight Action = "pan-right"
	PanUp    Action = "pan-up"
	PanDown  Action = "pan-down"
)

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Action
}

// NoopSource never emits. Stop closes its channel once.
type NoopSource struct {
	ch   chan Action
	once sync.Once
}

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Action)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Events() <-chan Action           { return n.ch }

func (n *NoopSource) Stop() error {
	n.once.Do(func() { close(n.ch) })
	return nil
}

// Linux input-event-codes.h
const (
	keyEsc       = 1
	keyQ         = 16
	keyR         = 19
	keyLeftCtrl  = 29
	keyS         = 31
	keyC         = 46
	keyRightCtrl = 97
	keyUp        = 103
	keyLeft      = 105
	keyRight     = 106
	keyDown      = 108
)

// Key event values.
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2
)

// keyMapper turns raw key codes into actions for one device.
// It tracks Ctrl so Ctrl+C can be recognised.
type keyMapper struct {
	ctrl bool
}

func (m *keyMapper) translate(code uint16, value int32) (Action, bool) {
	if code == keyLeftCtrl || code == keyRightCtrl {
		m.ctrl = value != keyReleased
		return "", false
	}
	if value != keyPressed && value != keyRepeated {
		return "", false
	}
	switch code {
	case keyEsc, keyQ:
		return Quit, true
	case keyC:
		if m.ctrl {
			return Quit, true
		}
	case keyS:
		return Toggle, true
	case keyR:
		return Reset, true
	case keyLeft:
		return PanLeft, true
	case keyRight:
		return PanRight, true
	case keyUp:
		return PanUp, true
	case keyDown:
		return PanDown, true
	}
	return "", false
}
