package touch

import (
	"reflect"
	"strings"
	"testing"

	"zoomview/pkg/geom"
	"zoomview/pkg/viewport"
)

const pinchScript = `
image: {width: 1000, height: 2000}
viewport: {width: 1080, height: 1920}
events:
  - {action: down, pointers: [[530, 960]]}
  - {action: pointer_down, pointers: [[530, 960], [550, 960]]}
  - {action: move, pointers: [[520, 960], [560, 960]]}
  - {action: pointer_up}
  - {action: up}
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(pinchScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Image != (Size{1000, 2000}) || s.Viewport != (Size{1080, 1920}) {
		t.Errorf("sizes = %+v %+v", s.Image, s.Viewport)
	}
	if s.Zoom != nil || s.Pan != nil {
		t.Errorf("toggles = %v %v, want unset", s.Zoom, s.Pan)
	}
	want := []Event{
		Down(geom.Pt(530, 960)),
		PointerDown(geom.Pt(530, 960), geom.Pt(550, 960)),
		Move(geom.Pt(520, 960), geom.Pt(560, 960)),
		PointerUp(),
		Up(),
	}
	if !reflect.DeepEqual(s.Events, want) {
		t.Errorf("events = %+v, want %+v", s.Events, want)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"bad yaml", "image: [", "failed to parse script"},
		{"unknown action", "image: {width: 1, height: 1}\nviewport: {width: 1, height: 1}\nevents: [{action: tap}]", "unknown action"},
		{"empty image", "image: {width: 0, height: 1}\nviewport: {width: 1, height: 1}", "image size"},
		{"empty viewport", "image: {width: 1, height: 1}\nviewport: {width: 1, height: 0}", "viewport size"},
		{"pointer_down needs two", "image: {width: 1, height: 1}\nviewport: {width: 1, height: 1}\nevents: [{action: pointer_down, pointers: [[0, 0]]}]", "needs 2 pointers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScript() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScriptMarshal(t *testing.T) {
	s, err := ParseScript([]byte(pinchScript))
	if err != nil {
		t.Fatal(err)
	}
	pan := false
	s.Pan = &pan

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript(Marshal()): %v\n%s", err, data)
	}
	if !reflect.DeepEqual(back, s) {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
}

func TestScriptRun(t *testing.T) {
	s, err := LoadScript(strings.NewReader(pinchScript))
	if err != nil {
		t.Fatal(err)
	}
	c, err := viewport.New()
	if err != nil {
		t.Fatal(err)
	}

	var modes []viewport.Mode
	if err := s.Run(c, func(i int, ev Event) {
		modes = append(modes, c.Mode())
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantModes := []viewport.Mode{
		viewport.ModeDragging,
		viewport.ModePinching,
		viewport.ModePinching,
		viewport.ModeNone,
		viewport.ModeNone,
	}
	if !reflect.DeepEqual(modes, wantModes) {
		t.Errorf("modes = %v, want %v", modes, wantModes)
	}
	if z := c.Zoom(); z < 2-1e-9 || z > 2+1e-9 {
		t.Errorf("Zoom() = %v, want 2", z)
	}
}

func TestScriptRunToggles(t *testing.T) {
	s, err := ParseScript([]byte(pinchScript + "zoom_enabled: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := viewport.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(c, nil); err != nil {
		t.Fatal(err)
	}
	if c.ZoomEnabled() {
		t.Error("ZoomEnabled() = true, want false")
	}
	if z := c.Zoom(); z < 1-1e-9 || z > 1+1e-9 {
		t.Errorf("Zoom() = %v, want 1", z)
	}
}
