package main

import (
	"image"
	"image/color"
)

// Renderer draws 2D primitives in screen coordinates and shows the result.
type Renderer interface {
	Clear(c color.RGBA)
	DrawLine(a, b image.Point, c color.RGBA, width float32)
	DrawPoint(p image.Point, c color.RGBA, radius int)
	Present() error
}

// Host is a render target that also reports user input.
type Host interface {
	Renderer
	Poll() (InputState, error)
}

// Style holds the colors and sizes used to draw a frame.
type Style struct {
	Background  color.RGBA
	PointColor  color.RGBA
	LineColor   color.RGBA
	JointColors [Joints]color.RGBA
	AxisColors  [3]color.RGBA
	PointRadius int
	LineWidth   float32
	ShowAxis    bool
	AxisLength  float64
}

func rgb(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// NewStyle converts the render section of the config.
func NewStyle(cfg RenderConfig) Style {
	s := Style{
		Background:  rgb(cfg.Background),
		PointColor:  rgb(cfg.PointColor),
		LineColor:   rgb(cfg.LineColor),
		PointRadius: cfg.PointRadius,
		LineWidth:   cfg.LineWidth,
		ShowAxis:    cfg.ShowAxis,
		AxisLength:  cfg.AxisLength,
	}
	for i, c := range cfg.JointColors {
		s.JointColors[i] = rgb(c)
	}
	for i, c := range cfg.AxisColors {
		s.AxisColors[i] = rgb(c)
	}
	return s
}
