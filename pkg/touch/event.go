// Package touch defines the pointer-event primitives consumed by the
// viewport controller and routes event streams onto them.
package touch

import (
	"fmt"
	"strings"

	"zoomview/pkg/geom"
)

// Action is the kind of a pointer event, after masking out the pointer index.
type Action int

const (
	// ActionDown is the first pointer going down.
	ActionDown Action = iota
	// ActionPointerDown is an additional pointer going down.
	ActionPointerDown
	// ActionMove carries updated positions of the pointers that are down.
	ActionMove
	// ActionPointerUp is a non-last pointer lifting.
	ActionPointerUp
	// ActionUp is the last pointer lifting.
	ActionUp
	// ActionCancel aborts the gesture, e.g. when the host steals the stream.
	ActionCancel
)

var actionNames = [...]string{
	ActionDown:        "down",
	ActionPointerDown: "pointer_down",
	ActionMove:        "move",
	ActionPointerUp:   "pointer_up",
	ActionUp:          "up",
	ActionCancel:      "cancel",
}

// String returns the action name used in gesture scripts.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction parses an action name.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Event is one pointer event. Pointers holds the positions of all pointers
// that are down, in pointer-index order; at most the first two are used.
type Event struct {
	Action   Action
	Pointers []geom.Point
}

// Handler receives pointer primitives. *viewport.Controller implements it.
type Handler interface {
	OnPointerDown(p geom.Point)
	OnSecondPointerDown(a, b geom.Point)
	OnPointerMove(points ...geom.Point)
	OnPointerUp()
	OnLastPointerUp()
}

// Dispatch routes ev onto h. Events are always consumed, even when they
// cannot affect the transform, so the host keeps delivering the gesture.
func Dispatch(h Handler, ev Event) bool {
	switch ev.Action {
	case ActionDown:
		if len(ev.Pointers) > 0 {
			h.OnPointerDown(ev.Pointers[0])
		}
	case ActionPointerDown:
		if len(ev.Pointers) >= 2 {
			h.OnSecondPointerDown(ev.Pointers[0], ev.Pointers[1])
		}
	case ActionMove:
		h.OnPointerMove(ev.Pointers...)
	case ActionPointerUp:
		h.OnPointerUp()
	case ActionUp, ActionCancel:
		h.OnLastPointerUp()
	}
	return true
}

// Down returns a first-pointer-down event.
func Down(p geom.Point) Event {
	return Event{Action: ActionDown, Pointers: []geom.Point{p}}
}

// PointerDown returns a second-pointer-down event.
func PointerDown(a, b geom.Point) Event {
	return Event{Action: ActionPointerDown, Pointers: []geom.Point{a, b}}
}

// Move returns a move event.
func Move(points ...geom.Point) Event {
	return Event{Action: ActionMove, Pointers: points}
}

// PointerUp returns a non-last-pointer-up event.
func PointerUp() Event {
	return Event{Action: ActionPointerUp}
}

// Up returns a last-pointer-up event.
func Up() Event {
	return Event{Action: ActionUp}
}
