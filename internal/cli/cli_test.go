package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zoomview/pkg/config"
	"zoomview/pkg/touch"
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

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("zoomview", "test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBoundsCommand(t *testing.T) {
	out, err := run(t, "bounds", "--image", "1000x2000", "--viewport", "1080x1920")
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	for _, want := range []string{
		"scale=1.0800 translate=(0.00, -120.00)",
		"left=444.00 top=768.00 right=636.00 bottom=1152.00",
		"shown:     1080.00 x 2160.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBoundsCommandImageFile(t *testing.T) {
	img := writePNG(t, t.TempDir(), 500, 1000)
	out, err := run(t, "bounds", "--image", img, "--viewport", "1080x1920")
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	for _, want := range []string{
		"scale=2.1600 translate=(0.00, -120.00)",
		"left=444.00 top=768.00 right=636.00 bottom=1152.00",
		"shown:     1080.00 x 2160.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = run(t, "bounds", "--image", filepath.Join(t.TempDir(), "missing.png"), "--viewport", "1x1")
	if err == nil || !strings.Contains(err.Error(), "failed to open image") {
		t.Errorf("missing image error = %v", err)
	}
}

func TestBoundsCommandConfig(t *testing.T) {
	cfg := writeFile(t, "zoom.yaml", "bounds_fraction: 0.5\n")
	out, err := run(t, "bounds", "--image", "1000x2000", "--viewport", "1080x1920", "--config", cfg)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if !strings.Contains(out, "left=300.00 top=480.00 right=780.00 bottom=1440.00") {
		t.Errorf("unexpected bounds:\n%s", out)
	}
}

func TestBoundsCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad size", []string{"bounds", "--image", "1000", "--viewport", "1x1"}, "invalid size"},
		{"negative", []string{"bounds", "--image", "-1x5", "--viewport", "1x1"}, "must be positive"},
		{"missing flag", []string{"bounds", "--image", "1x1"}, "viewport"},
		{"bad config", []string{"bounds", "--image", "1x1", "--viewport", "1x1", "--config", "/nonexistent/zoom.yaml"}, "failed to read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReplayCommand(t *testing.T) {
	script := writeFile(t, "pinch.yaml", pinchScript)
	out, err := run(t, "replay", script)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	for i, want := range []string{"mode=dragging", "mode=pinching", "mode=pinching", "mode=none", "mode=none"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}
	if !strings.Contains(lines[2], "scale=2.1600 translate=(-540.00, -1200.00)") {
		t.Errorf("pinch line = %q", lines[2])
	}
	if !strings.Contains(lines[5], "zoom=2.0000") {
		t.Errorf("final line = %q", lines[5])
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir, 50, 100)

	script := writeFile(t, "pinch.yaml", pinchScript)
	outPath := filepath.Join(dir, "out", "view.png")
	out, err := run(t, "render", script, "--image", imgPath, "-o", outPath, "--overlay")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "(1080x1920 pixels)") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom.yaml")
	out, err := run(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q", out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("written config = %+v, want defaults %+v", *cfg, *config.Default())
	}

	if _, err := run(t, "config", "init", filepath.Join(t.TempDir(), "no", "dir.yaml")); err == nil {
		t.Error("expected write error for missing directory")
	}
}

func TestScriptCommand(t *testing.T) {
	out, err := run(t, "script", "--image", "1000x2000", "--viewport", "1080x1920", "--scale", "2", "--drag", "40,-25")
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	script, err := touch.ParseScript([]byte(out))
	if err != nil {
		t.Fatalf("generated script does not parse: %v\n%s", err, out)
	}
	if len(script.Events) != 8 {
		t.Fatalf("got %d events, want 8", len(script.Events))
	}

	path := writeFile(t, "gen.yaml", out)
	replayed, err := run(t, "replay", path)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(replayed), "\n")
	if !strings.Contains(lines[2], "scale=2.1600 translate=(-540.00, -1200.00)") {
		t.Errorf("pinch line = %q", lines[2])
	}
	final := lines[len(lines)-1]
	if !strings.Contains(final, "translate=(-500.00, -1225.00)") || !strings.Contains(final, "zoom=2.0000") {
		t.Errorf("final line = %q", final)
	}
}

func TestScriptCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinch.yaml")
	out, err := run(t, "script", "--image", "10x10", "--viewport", "100x100", "-o", path)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !strings.Contains(out, "(5 events)") {
		t.Errorf("output = %q", out)
	}
	if _, err := touch.LoadScriptFile(path); err != nil {
		t.Errorf("LoadScriptFile: %v", err)
	}
}

func TestScriptCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero scale", []string{"script", "--image", "1x1", "--viewport", "1x1", "--scale", "0"}, "must be positive"},
		{"bad drag", []string{"script", "--image", "1x1", "--viewport", "1x1", "--drag", "5"}, "invalid offset"},
		{"bad viewport", []string{"script", "--image", "1x1", "--viewport", "wide"}, "invalid size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
