package system

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console controls the active virtual terminal the framebuffer is shown on.
type Console struct {
	// Paths are tried in order; the default prefers /dev/tty (active VT) over /dev/tty0.
	Paths  []string
	Logger Logger
}

func NewConsole(logger Logger) *Console {
	return &Console{Logger: logger}
}

func (c *Console) paths() []string {
	if len(c.Paths) > 0 {
		return c.Paths
	}
	return []string{"/dev/tty", "/dev/tty0"}
}

func (c *Console) log(err error, what string) {
	if c.Logger == nil {
		return
	}
	if err != nil {
		c.Logger.Errorf("tty", "%s failed: %v", what, err)
		return
	}
	c.Logger.Infof("tty", "%s done", what)
}
