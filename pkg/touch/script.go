package touch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"zoomview/pkg/geom"
)

// Script is a recorded gesture: the image and viewport it ran against and
// the event stream. Scripts are stored as YAML:
//
//	image: {width: 1000, height: 2000}
//	viewport: {width: 1080, height: 1920}
//	events:
//	  - {action: down, pointers: [[540, 960]]}
//	  - {action: move, pointers: [[560, 990]]}
//	  - {action: up}
type Script struct {
	Image    Size    `yaml:"image"`
	Viewport Size    `yaml:"viewport"`
	Zoom     *bool   `yaml:"zoom_enabled,omitempty"`
	Pan      *bool   `yaml:"pan_enabled,omitempty"`
	Events   []Event `yaml:"-"`
}

// Size is a width/height pair in a script.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type scriptEvent struct {
	Action   string       `yaml:"action"`
	Pointers [][2]float64 `yaml:"pointers,omitempty"`
}

type scriptFile struct {
	Script `yaml:",inline"`
	Events []scriptEvent `yaml:"events"`
}

// Host is what a script needs to drive: the pointer primitives plus image
// binding, measurement and the gesture toggles.
type Host interface {
	Handler
	BindImage(width, height int) error
	OnViewportMeasured(width, height float64)
	SetZoomEnabled(enabled bool)
	SetPanEnabled(enabled bool)
}

// ParseScript decodes a YAML gesture script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	s := f.Script
	s.Events = make([]Event, 0, len(f.Events))
	for i, se := range f.Events {
		action, err := ParseAction(se.Action)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		ev := Event{Action: action}
		for _, p := range se.Pointers {
			ev.Pointers = append(ev.Pointers, geom.Pt(p[0], p[1]))
		}
		s.Events = append(s.Events, ev)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads and decodes a script from r.
func LoadScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// LoadScriptFile reads and decodes the script at path.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// Validate checks sizes and per-action pointer counts.
func (s *Script) Validate() error {
	if s.Image.Width < 1 || s.Image.Height < 1 {
		return errors.New("script: image size must be positive")
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return errors.New("script: viewport size must be positive")
	}
	for i, ev := range s.Events {
		need := 0
		switch ev.Action {
		case ActionDown, ActionMove:
			need = 1
		case ActionPointerDown:
			need = 2
		}
		if len(ev.Pointers) < need {
			return fmt.Errorf("script: event %d (%s) needs %d pointers, has %d", i, ev.Action, need, len(ev.Pointers))
		}
	}
	return nil
}

// Marshal encodes the script back to YAML.
func (s *Script) Marshal() ([]byte, error) {
	f := scriptFile{Script: *s}
	for _, ev := range s.Events {
		se := scriptEvent{Action: ev.Action.String()}
		for _, p := range ev.Pointers {
			se.Pointers = append(se.Pointers, [2]float64{p.X, p.Y})
		}
		f.Events = append(f.Events, se)
	}
	return yaml.Marshal(&f)
}

// Run binds the script's image to h, measures the viewport, applies the
// toggles and dispatches every event. after, if non-nil, is called after
// each event with its index.
func (s *Script) Run(h Host, after func(i int, ev Event)) error {
	if err := h.BindImage(int(s.Image.Width), int(s.Image.Height)); err != nil {
		return fmt.Errorf("failed to bind image: %w", err)
	}
	h.OnViewportMeasured(s.Viewport.Width, s.Viewport.Height)
	if s.Zoom != nil {
		h.SetZoomEnabled(*s.Zoom)
	}
	if s.Pan != nil {
		h.SetPanEnabled(*s.Pan)
	}
	for i, ev := range s.Events {
		Dispatch(h, ev)
		if after != nil {
			after(i, ev)
		}
	}
	return nil
}
