package main

import (
	"errors"
	"math"
	"testing"
)

func TestControlsApply(t *testing.T) {
	c := DefaultConfig().ControlRates()
	cam := Camera{Zoom: 1}

	if !c.Apply(&cam, PanUp|PanLeft|PitchUp|YawRight|ZoomIn) {
		t.Fatal("Apply refused zoom in")
	}
	want := Camera{Center: Vec3{X: 0.5, Y: 0.5}, Pitch: 0.01, Yaw: -0.01, Zoom: 1.05}
	if cam.Center != want.Center ||
		math.Abs(cam.Pitch-want.Pitch) > eps ||
		math.Abs(cam.Yaw-want.Yaw) > eps ||
		math.Abs(cam.Zoom-want.Zoom) > eps {
		t.Errorf("got %+v want %+v", cam, want)
	}

	c.Apply(&cam, PanDown|PanRight|PitchDown|YawLeft)
	if cam.Center != (Vec3{}) || math.Abs(cam.Pitch) > eps || math.Abs(cam.Yaw) > eps {
		t.Errorf("opposite controls did not cancel: %+v", cam)
	}

	// Opposing keys held together cancel out.
	before := cam
	c.Apply(&cam, PanUp|PanDown|PanLeft|PanRight)
	if cam != before {
		t.Errorf("opposing pans moved camera: %+v", cam)
	}
}

func TestControlsZoomOutFloor(t *testing.T) {
	c := Controls{ZoomRate: 0.05}
	cam := Camera{Zoom: 0.05}
	if c.Apply(&cam, ZoomOut) {
		t.Error("zoom out at floor reported success")
	}
	if cam.Zoom != 0.05 {
		t.Errorf("zoom = %g", cam.Zoom)
	}
}

func TestParseKeymap(t *testing.T) {
	km, err := ParseKeymap(DefaultConfig().Controls.Keys)
	if err != nil {
		t.Fatalf("ParseKeymap: %v", err)
	}
	if got, want := km.Resolve([]string{"w", "escape"}), PitchUp|Quit; got != want {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
	if got := km.Resolve([]string{"q"}); got != 0 {
		t.Errorf("unbound key resolved to %v", got)
	}

	_, err = ParseKeymap(map[string]string{"x": "jump"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown action: err = %v", err)
	}
}

func TestActionString(t *testing.T) {
	if got := Action(0).String(); got != "none" {
		t.Errorf("got %q", got)
	}
	if got := (ZoomIn | PanUp).String(); got != "pan_up|zoom_in" {
		t.Errorf("got %q", got)
	}
	if Action(0).Has(0) {
		t.Error("empty set has empty action")
	}
}
