//go:build !linux

package input

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Keyboard has no device backend outside Linux and emits nothing.
type Keyboard struct {
	*NoopSource
}

func NewKeyboard(logger Logger) *Keyboard {
	if logger != nil {
		logger.Infof("input", "keyboard input not supported on this platform")
	}
	return &Keyboard{NoopSource: NewNoopSource()}
}
