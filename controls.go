package main

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a set of camera controls held down during one poll.
type Action uint16

const (
	PanUp Action = 1 << iota
	PanDown
	PanLeft
	PanRight
	PitchUp
	PitchDown
	YawLeft
	YawRight
	ZoomIn
	ZoomOut
	Quit
)

var actionNames = map[string]Action{
	"pan_up":     PanUp,
	"pan_down":   PanDown,
	"pan_left":   PanLeft,
	"pan_right":  PanRight,
	"pitch_up":   PitchUp,
	"pitch_down": PitchDown,
	"yaw_left":   YawLeft,
	"yaw_right":  YawRight,
	"zoom_in":    ZoomIn,
	"zoom_out":   ZoomOut,
	"quit":       Quit,
}

// Has reports whether every action in b is set in a.
func (a Action) Has(b Action) bool {
	return a&b == b && b != 0
}

func (a Action) String() string {
	if a == 0 {
		return "none"
	}
	var names []string
	for name, bit := range actionNames {
		if a.Has(bit) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidConfig, name)
	}
	return a, nil
}

// Keymap binds key names, as understood by a host, to actions.
type Keymap map[string]Action

// ParseKeymap resolves the action names in bindings. Key names are checked
// by the host that reads them.
func ParseKeymap(bindings map[string]string) (Keymap, error) {
	km := make(Keymap, len(bindings))
	for key, name := range bindings {
		a, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		km[strings.ToLower(key)] |= a
	}
	return km, nil
}

// Resolve returns the actions bound to the held keys.
func (km Keymap) Resolve(held []string) Action {
	var a Action
	for _, k := range held {
		a |= km[k]
	}
	return a
}

// InputState is what a host reports for one poll.
type InputState struct {
	Quit bool
	Held Action
}

// Controls turns held actions into camera deltas. Rates are per tick.
type Controls struct {
	MoveRate   float64
	RotateRate float64
	ZoomRate   float64
}

// Apply moves cam for the held actions. It reports false when a zoom out
// was refused by the camera.
func (c Controls) Apply(cam *Camera, held Action) bool {
	var dx, dy, dPitch, dYaw float64
	if held.Has(PanUp) {
		dy += c.MoveRate
	}
	if held.Has(PanDown) {
		dy -= c.MoveRate
	}
	if held.Has(PanRight) {
		dx -= c.MoveRate
	}
	if held.Has(PanLeft) {
		dx += c.MoveRate
	}
	if held.Has(PitchUp) {
		dPitch += c.RotateRate
	}
	if held.Has(PitchDown) {
		dPitch -= c.RotateRate
	}
	if held.Has(YawLeft) {
		dYaw += c.RotateRate
	}
	if held.Has(YawRight) {
		dYaw -= c.RotateRate
	}
	cam.PanBy(dx, dy)
	cam.RotateBy(dPitch, dYaw)

	ok := true
	if held.Has(ZoomIn) {
		cam.ZoomBy(c.ZoomRate)
	}
	if held.Has(ZoomOut) {
		ok = cam.ZoomBy(-c.ZoomRate)
	}
	return ok
}
