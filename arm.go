package main

import "github.com/go-gl/mathgl/mgl64"

// Joints is the number of revolute joints in every arm.
const Joints = 3

// Arm holds the joint angles of one arm and the fixed amount each angle
// grows per tick. Angles accumulate without wrapping.
type Arm struct {
	Angles [Joints]float64
	Speeds [Joints]float64
}

// Advance moves every joint by its speed.
func (a *Arm) Advance() {
	for i := range a.Angles {
		a.Angles[i] += a.Speeds[i]
	}
}

// ArmSpeed returns the base angular speed of arm i. With alternate set, odd
// arms turn the other way.
func ArmSpeed(i int, step float64, alternate bool) float64 {
	s := step * float64(i)
	if alternate && i%2 != 0 {
		s = -s
	}
	return s
}

// NewArms builds the arm population described by cfg. Every arm starts in
// the zero pose.
func NewArms(cfg ArmsConfig) []Arm {
	arms := make([]Arm, cfg.Count)
	for i := range arms {
		s := ArmSpeed(i, cfg.SpeedStep, cfg.Alternate)
		for j, ratio := range cfg.Ratios {
			arms[i].Speeds[j] = s * ratio
		}
	}
	return arms
}

// Pose holds the world position of every joint of an arm, starting at the
// shared base.
type Pose struct {
	Base, P1, P2, P3 Vec3
}

// Chain is the kinematic description shared by every arm: the link
// parameters, the world position of the root joint and the rotation about X
// that aligns the arm frame with the world frame.
type Chain struct {
	Links [Joints]Link
	Base  Vec3
	Align float64
}

// ToWorld maps p from the frame of the arm root to world space.
func (c Chain) ToWorld(p Vec3) Vec3 {
	return p.RotateX(c.Align).Add(c.Base)
}

// Joints computes the world position of every joint of a for its current
// angles. The transforms are chained from the root outward so the origin of
// each frame lands in the root frame.
func (c Chain) Joints(a Arm) Pose {
	var origin Vec3
	pose := Pose{Base: c.Base}
	out := [Joints]*Vec3{&pose.P1, &pose.P2, &pose.P3}

	m := mgl64.Ident4()
	for i, l := range c.Links {
		m = m.Mul4(l.Matrix(a.Angles[i]))
		*out[i] = c.ToWorld(Apply(m, origin))
	}
	return pose
}
