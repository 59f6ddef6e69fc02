package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"zoomview/pkg/viewport"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			data: "",
			want: *Default(),
		},
		{
			name: "partial",
			data: "max_scale: 3\npan_enabled: false\n",
			want: Config{MaxScale: 3, BoundsFraction: 0.2, MinPointerDistance: 10, ZoomEnabled: true, PanEnabled: false},
		},
		{
			name: "full",
			data: "max_scale: 8\nbounds_fraction: 0.5\nmin_pointer_distance: 4\nzoom_enabled: false\npan_enabled: true\n",
			want: Config{MaxScale: 8, BoundsFraction: 0.5, MinPointerDistance: 4, ZoomEnabled: false, PanEnabled: true},
		},
		{name: "invalid max scale", data: "max_scale: 0\n", wantErr: true},
		{name: "invalid fraction", data: "bounds_fraction: 2\n", wantErr: true},
		{name: "malformed", data: "max_scale: [", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.MinPointerDistance = -1
	if err := cfg.Validate(); !errors.Is(err, viewport.ErrInvalidConfiguration) {
		t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := cfg.Options(); !errors.Is(err, viewport.ErrInvalidConfiguration) {
		t.Errorf("Options() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestViewportOptions(t *testing.T) {
	cfg := &Config{MaxScale: 2, BoundsFraction: 0.3, MinPointerDistance: 5, ZoomEnabled: false, PanEnabled: true}
	c, err := viewport.New(cfg.ViewportOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	want := viewport.Options{MaxScale: 2, BoundsFraction: 0.3, MinPointerDistance: 5, ZoomEnabled: false, PanEnabled: true}
	if got := c.Options(); got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom.yaml")
	cfg := &Config{MaxScale: 4, BoundsFraction: 0.25, MinPointerDistance: 12, ZoomEnabled: true, PanEnabled: false}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", *got, *cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zoom.yaml")
	if err := Default().Save(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) { changes <- cfg })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	// Other files in the directory are ignored; invalid content is skipped.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("max_scale: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("max_scale: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("max_scale: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.MaxScale == 9 || cfg.MaxScale < 0 {
				t.Fatalf("unexpected reload %+v", cfg)
			}
			if cfg.MaxScale != 7 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() = %v", err)
			}
			return
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
}
