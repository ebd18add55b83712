package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robotics3d.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Arms.Count != 100 || cfg.Arms.SpeedStep != 0.0005 || !cfg.Arms.Alternate {
		t.Errorf("arms = %+v", cfg.Arms)
	}
	if cfg.Render.PointRadius != 3 || cfg.Render.LineWidth != 1 {
		t.Errorf("render sizes = %d, %g", cfg.Render.PointRadius, cfg.Render.LineWidth)
	}
	if cfg.Camera.YawRate != 0.01 {
		t.Errorf("yaw rate = %g", cfg.Camera.YawRate)
	}
	if cfg.Chain.Links[0].Alpha != -math.Pi/2 || cfg.Chain.Links[0].D != 100 {
		t.Errorf("first link = %+v", cfg.Chain.Links[0])
	}

	// Defaults must not share the keymap between calls.
	DefaultConfig().Controls.Keys["q"] = "quit"
	if _, ok := DefaultConfig().Controls.Keys["q"]; ok {
		t.Error("default key bindings are shared")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1024
  height: 768
arms:
  count: 12
  alternate: false
camera:
  zoom: 2.5
controls:
  keys:
    q: quit
    i: zoom_in
render:
  line_color: [10, 20, 30]
workers: 4
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("window = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Robotics3D" {
		t.Errorf("title default lost: %q", cfg.Window.Title)
	}
	if cfg.Arms.Count != 12 || cfg.Arms.Alternate {
		t.Errorf("arms = %+v", cfg.Arms)
	}
	if cfg.Arms.SpeedStep != 0.0005 {
		t.Errorf("speed step default lost: %g", cfg.Arms.SpeedStep)
	}
	if cfg.Camera.Zoom != 2.5 || cfg.Camera.Pitch != 0.1 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if len(cfg.Controls.Keys) != 2 || cfg.Controls.Keys["q"] != "quit" {
		t.Errorf("keys = %v, want only the file bindings", cfg.Controls.Keys)
	}
	if cfg.Render.LineColor != [3]uint8{10, 20, 30} {
		t.Errorf("line color = %v", cfg.Render.LineColor)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d", cfg.Workers)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Arms.Count != 100 || len(cfg.Controls.Keys) != 11 {
		t.Errorf("defaults not applied: %+v", cfg.Arms)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"zero zoom":      "camera:\n  zoom: 0\n",
		"negative zoom":  "camera:\n  zoom: -1\n",
		"negative arms":  "arms:\n  count: -3\n",
		"no width":       "window:\n  width: 0\n",
		"unknown action": "controls:\n  keys:\n    x: fly\n",
		"negative hz":    "headless:\n  hz: -1\n",
		"negative work":  "workers: -2\n",
		"huge hz":        "headless:\n  hz: 2000000000\n",
		"log level":      "log:\n  level: verbose\n",
		"zero zoom rate": "controls:\n  zoom_rate: 0\n",
		"neg zoom rate":  "controls:\n  zoom_rate: -0.05\n",
		"neg move rate":  "controls:\n  move_rate: -0.5\n",
		"neg rotate":     "controls:\n  rotate_rate: -0.01\n",
		"thin line":      "render:\n  line_width: 0\n",
		"neg axis":       "render:\n  show_axis: true\n  axis_length: -1\n",
	}
	for name, content := range tests {
		_, err := LoadConfig(writeConfig(t, content))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
	if _, err := LoadConfig(writeConfig(t, "arms: [1, 2\n")); err == nil {
		t.Error("malformed yaml loaded")
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("configs", "robotics3d.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Arms != def.Arms || cfg.Camera != def.Camera || cfg.Render != def.Render {
		t.Errorf("shipped config differs from defaults:\n%+v\n%+v", cfg, def)
	}
	if cfg.Chain.Base != def.Chain.Base || math.Abs(cfg.Chain.Align-def.Chain.Align) > eps {
		t.Errorf("chain = %+v", cfg.Chain)
	}
	for i := range cfg.Chain.Links {
		got, want := cfg.Chain.Links[i], def.Chain.Links[i]
		if math.Abs(got.Alpha-want.Alpha) > eps || got.D != want.D || got.R != want.R {
			t.Errorf("link %d = %+v, want %+v", i, got, want)
		}
	}
	if len(cfg.Controls.Keys) != len(def.Controls.Keys) {
		t.Errorf("keys = %v", cfg.Controls.Keys)
	}
}

func TestValidateAxisLengthIgnoredWithoutAxis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.ShowAxis = false
	cfg.Render.AxisLength = -1
	if err := cfg.Validate(); err != nil {
		t.Errorf("hidden axis length rejected: %v", err)
	}
	cfg.Log.Level = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty log level rejected: %v", err)
	}
}
