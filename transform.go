package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DH returns the homogeneous transform between two consecutive joint frames
// described by the Denavit-Hartenberg parameters theta (joint angle), alpha
// (link twist), d (link offset) and r (link length).
func DH(theta, alpha, d, r float64) mgl64.Mat4 {
	ct, st := math.Cos(theta), math.Sin(theta)
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	return mgl64.Mat4FromRows(
		mgl64.Vec4{ct, -st * ca, st * sa, r * ct},
		mgl64.Vec4{st, ct * ca, -ct * sa, r * st},
		mgl64.Vec4{0, sa, ca, d},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// Apply multiplies m by the homogeneous form of p.
func Apply(m mgl64.Mat4, p Vec3) Vec3 {
	return FromHomog(m.Mul4x1(p.Homog()))
}

// Link holds the fixed DH parameters of one arm segment. The joint angle is
// the only parameter that changes while the arm moves.
type Link struct {
	Alpha float64 `yaml:"alpha"`
	D     float64 `yaml:"d"`
	R     float64 `yaml:"r"`
}

// Matrix returns the link transform for joint angle theta.
func (l Link) Matrix(theta float64) mgl64.Mat4 {
	return DH(theta, l.Alpha, l.D, l.R)
}
