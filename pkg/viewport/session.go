package viewport

import "zoomview/pkg/geom"

// Mode is the active gesture.
type Mode int

const (
	// ModeNone means no pointer is down.
	ModeNone Mode = iota
	// ModeDragging means one pointer is panning the image.
	ModeDragging
	// ModePinching means two pointers are zooming the image.
	ModePinching
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDragging:
		return "dragging"
	case ModePinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// session is the state of an in-progress gesture. The concrete type
// determines the mode, so mode-specific data cannot outlive its mode.
type session interface {
	mode() Mode
}

// dragSession is created by the first pointer going down.
type dragSession struct {
	origin geom.Point
	start  geom.Matrix
}

func (dragSession) mode() Mode { return ModeDragging }

// pinchSession is created by a second pointer going down far enough from
// the first one.
type pinchSession struct {
	startDistance float64
	mid           geom.Point
	start         geom.Matrix
}

func (pinchSession) mode() Mode { return ModePinching }
