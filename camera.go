package main

import "image"

// Camera maps world points onto the screen. Center is where the world
// origin lands on screen; Pitch and Yaw orbit the world around it.
type Camera struct {
	Center Vec3
	Pitch  float64
	Yaw    float64
	Zoom   float64
}

// NewCamera returns a camera set up from cfg.
func NewCamera(cfg CameraConfig) Camera {
	return Camera{
		Center: vec3From(cfg.Center),
		Pitch:  cfg.Pitch,
		Yaw:    cfg.Yaw,
		Zoom:   cfg.Zoom,
	}
}

// Project converts p to integer screen coordinates. Screen y grows
// downward, so y is flipped after the rotations.
func (c Camera) Project(p Vec3) image.Point {
	v := p.Scale(c.Zoom).RotateX(c.Pitch).RotateY(c.Yaw)
	v.Y = -v.Y
	v = v.Add(c.Center)
	return image.Pt(int(v.X), int(v.Y))
}

// PanBy moves the screen anchor.
func (c *Camera) PanBy(dx, dy float64) {
	c.Center.X += dx
	c.Center.Y += dy
}

// RotateBy changes the orbit angles.
func (c *Camera) RotateBy(dPitch, dYaw float64) {
	c.Pitch += dPitch
	c.Yaw += dYaw
}

// ZoomBy adds dz to the zoom factor. A change that would leave zoom at or
// below zero is ignored and ZoomBy reports false.
func (c *Camera) ZoomBy(dz float64) bool {
	if c.Zoom+dz <= 0 {
		return false
	}
	c.Zoom += dz
	return true
}
