package surface

import "errors"

type Kind int

const (
	SurfaceUnavailable Kind = iota + 1
	ContextUnavailable
)

func (k Kind) String() string {
	switch k {
	case SurfaceUnavailable:
		return "surface unavailable"
	case ContextUnavailable:
		return "context unavailable"
	default:
		return "unknown"
	}
}

var (
	ErrSurfaceUnavailable = errors.New("surface: surface unavailable")
	ErrContextUnavailable = errors.New("surface: context unavailable")

	// ErrUnsupportedContext is returned by surfaces asked for a context kind they do not provide.
	ErrUnsupportedContext = errors.New("surface: unsupported context kind")
	// ErrClosed is returned by surfaces that have been closed.
	ErrClosed = errors.New("surface: closed")
)

// Error reports a failed binding query. Use errors.Is with
// ErrSurfaceUnavailable or ErrContextUnavailable to test the kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := "surface: " + e.Op + ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrSurfaceUnavailable:
		return e.Kind == SurfaceUnavailable
	case ErrContextUnavailable:
		return e.Kind == ContextUnavailable
	}
	return false
}
