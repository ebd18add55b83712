package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full program configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Arms     ArmsConfig     `yaml:"arms"`
	Chain    ChainConfig    `yaml:"chain"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Render   RenderConfig   `yaml:"render"`
	Headless HeadlessConfig `yaml:"headless"`
	Log      LogConfig      `yaml:"log"`
	// Workers bounds the goroutines computing arm poses. 0 or 1 computes
	// them on the loop goroutine.
	Workers int `yaml:"workers"`
}

// WindowConfig sizes the render target.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ArmsConfig describes the arm population.
type ArmsConfig struct {
	Count     int             `yaml:"count"`
	SpeedStep float64         `yaml:"speed_step"`
	Alternate bool            `yaml:"alternate"`
	Ratios    [Joints]float64 `yaml:"ratios"`
}

// ChainConfig holds the shared arm geometry.
type ChainConfig struct {
	Links [Joints]Link `yaml:"links"`
	Base  [3]float64   `yaml:"base"`
	Align float64      `yaml:"align"`
}

// CameraConfig holds the initial camera and its automatic orbit.
type CameraConfig struct {
	Center  [3]float64 `yaml:"center"`
	Pitch   float64    `yaml:"pitch"`
	Yaw     float64    `yaml:"yaw"`
	Zoom    float64    `yaml:"zoom"`
	YawRate float64    `yaml:"yaw_rate"`
}

// ControlsConfig holds per-tick control rates and key bindings.
type ControlsConfig struct {
	MoveRate   float64           `yaml:"move_rate"`
	RotateRate float64           `yaml:"rotate_rate"`
	ZoomRate   float64           `yaml:"zoom_rate"`
	Keys       map[string]string `yaml:"keys"`
}

// RenderConfig holds colors as RGB triples and primitive sizes.
type RenderConfig struct {
	Background  [3]uint8         `yaml:"background"`
	PointColor  [3]uint8         `yaml:"point_color"`
	LineColor   [3]uint8         `yaml:"line_color"`
	JointColors [Joints][3]uint8 `yaml:"joint_colors"`
	AxisColors  [3][3]uint8      `yaml:"axis_colors"`
	PointRadius int              `yaml:"point_radius"`
	LineWidth   float32          `yaml:"line_width"`
	ShowAxis    bool             `yaml:"show_axis"`
	AxisLength  float64          `yaml:"axis_length"`
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hz       int    `yaml:"hz"`
	Ticks    uint64 `yaml:"ticks"`
	Snapshot string `yaml:"snapshot"`
}

// LogConfig selects the log level and an optional log directory.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	const width, height = 800, 600
	return &Config{
		Window: WindowConfig{Width: width, Height: height, Title: "Robotics3D"},
		Arms: ArmsConfig{
			Count:     100,
			SpeedStep: 0.0005,
			Alternate: true,
			Ratios:    [Joints]float64{1, 1.5, 2},
		},
		Chain: ChainConfig{
			Links: [Joints]Link{
				{Alpha: -math.Pi / 2, D: 100, R: 0},
				{Alpha: 0, D: 0, R: 100},
				{Alpha: 0, D: 0, R: 100},
			},
			Base:  [3]float64{0, 150, 0},
			Align: -math.Pi / 2,
		},
		Camera: CameraConfig{
			Center:  [3]float64{width / 2, height/2 + 200, 0},
			Pitch:   0.1,
			Yaw:     -0.2,
			Zoom:    1,
			YawRate: 0.01,
		},
		Controls: ControlsConfig{
			MoveRate:   0.5,
			RotateRate: 0.01,
			ZoomRate:   0.05,
			Keys: map[string]string{
				"up":     "pan_up",
				"down":   "pan_down",
				"left":   "pan_left",
				"right":  "pan_right",
				"w":      "pitch_up",
				"s":      "pitch_down",
				"a":      "yaw_left",
				"d":      "yaw_right",
				"=":      "zoom_in",
				"-":      "zoom_out",
				"escape": "quit",
			},
		},
		Render: RenderConfig{
			Background:  [3]uint8{0, 0, 0},
			PointColor:  [3]uint8{200, 200, 200},
			LineColor:   [3]uint8{100, 150, 255},
			JointColors: [Joints][3]uint8{{200, 0, 0}, {0, 0, 200}, {0, 200, 0}},
			AxisColors:  [3][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}},
			PointRadius: 3,
			LineWidth:   1,
			ShowAxis:    true,
			AxisLength:  100,
		},
		Headless: HeadlessConfig{Hz: 60},
		Log:      LogConfig{Level: "info"},
		Workers:  1,
	}
}

// LoadConfig reads the YAML file at path over the defaults and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(data) > 0 {
		// Key bindings in the file replace the defaults instead of merging.
		var probe struct {
			Controls struct {
				Keys map[string]string `yaml:"keys"`
			} `yaml:"controls"`
		}
		if err := yaml.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if probe.Controls.Keys != nil {
			cfg.Controls.Keys = nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values no component can run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Arms.Count < 0:
		return fmt.Errorf("%w: arm count %d", ErrInvalidConfig, c.Arms.Count)
	case c.Camera.Zoom <= 0:
		return fmt.Errorf("%w: zoom must be positive, got %g", ErrInvalidConfig, c.Camera.Zoom)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.Render.PointRadius < 0:
		return fmt.Errorf("%w: point radius %d", ErrInvalidConfig, c.Render.PointRadius)
	case c.Render.LineWidth < 1:
		return fmt.Errorf("%w: line width %g", ErrInvalidConfig, c.Render.LineWidth)
	case c.Render.ShowAxis && c.Render.AxisLength < 0:
		return fmt.Errorf("%w: axis length %g", ErrInvalidConfig, c.Render.AxisLength)
	case c.Controls.ZoomRate <= 0:
		return fmt.Errorf("%w: zoom rate must be positive, got %g", ErrInvalidConfig, c.Controls.ZoomRate)
	case c.Controls.MoveRate < 0 || c.Controls.RotateRate < 0:
		return fmt.Errorf("%w: negative control rate (move %g, rotate %g)",
			ErrInvalidConfig, c.Controls.MoveRate, c.Controls.RotateRate)
	}
	if _, err := frameInterval(c.Headless.Hz); err != nil {
		return err
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := ParseKeymap(c.Controls.Keys); err != nil {
		return err
	}
	return nil
}

// ControlRates returns the control rates as a Controls value.
func (c *Config) ControlRates() Controls {
	return Controls{
		MoveRate:   c.Controls.MoveRate,
		RotateRate: c.Controls.RotateRate,
		ZoomRate:   c.Controls.ZoomRate,
	}
}

// NewChain returns the arm geometry from the config.
func (c *Config) NewChain() Chain {
	return Chain{
		Links: c.Chain.Links,
		Base:  vec3From(c.Chain.Base),
		Align: c.Chain.Align,
	}
}
