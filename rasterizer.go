package main

import (
	"image"
	"image/color"
	"math"
)

// Canvas is a software Renderer backed by an RGBA image.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Clear(col color.RGBA) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if !image.Pt(x, y).In(c.img.Rect) {
		return
	}
	offset := c.img.PixOffset(x, y)
	c.img.Pix[offset] = col.R
	c.img.Pix[offset+1] = col.G
	c.img.Pix[offset+2] = col.B
	c.img.Pix[offset+3] = col.A
}

// DrawLine draws a line from a to b with a DDA walk. Widths above one are
// drawn as parallel strokes.
func (c *Canvas) DrawLine(a, b image.Point, col color.RGBA, width float32) {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		c.set(a.X, a.Y, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	// Offset extra strokes across the major axis.
	ox, oy := 0, 1
	if math.Abs(dy) > math.Abs(dx) {
		ox, oy = 1, 0
	}
	w := int(width)
	if w < 1 {
		w = 1
	}

	for k := 0; k < w; k++ {
		shift := k - (w-1)/2
		x := float64(a.X + shift*ox)
		y := float64(a.Y + shift*oy)
		for i := 0; i <= int(steps); i++ {
			c.set(int(math.Round(x)), int(math.Round(y)), col)
			x += xInc
			y += yInc
		}
	}
}

// DrawPoint fills a disc of the given radius around p.
func (c *Canvas) DrawPoint(p image.Point, col color.RGBA, radius int) {
	if radius <= 0 {
		c.set(p.X, p.Y, col)
		return
	}
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				c.set(p.X+x, p.Y+y, col)
			}
		}
	}
}

// Present is a no-op; the image always holds the latest frame.
func (c *Canvas) Present() error {
	return nil
}
