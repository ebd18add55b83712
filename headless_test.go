package main

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	hh, err := NewHeadlessHost(context.Background(), 40, 30, HeadlessConfig{Snapshot: path})
	if err != nil {
		t.Fatal(err)
	}
	hh.Clear(black)
	hh.DrawPoint(image.Pt(20, 15), red, 2)
	if err := hh.Present(); err != nil {
		t.Fatal(err)
	}
	if hh.Frames() != 1 {
		t.Errorf("frames = %d", hh.Frames())
	}
	if err := hh.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("snapshot size %v", b)
	}
	if r, g, b, _ := img.At(20, 15).RGBA(); r != 0xffff || g != 0 || b != 0 {
		t.Errorf("snapshot center = %v", img.At(20, 15))
	}
}

func TestHeadlessPacing(t *testing.T) {
	hh, err := NewHeadlessHost(context.Background(), 2, 2, HeadlessConfig{Hz: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer hh.Close()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := hh.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if d := time.Since(start); d < 40*time.Millisecond {
		t.Errorf("5 frames at 100 Hz took %v", d)
	}
}

func TestHeadlessPacingCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hh, err := NewHeadlessHost(ctx, 2, 2, HeadlessConfig{Hz: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer hh.Close()

	done := make(chan struct{})
	go func() {
		hh.Present()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Present blocked after cancel")
	}
}

func TestHeadlessBadHz(t *testing.T) {
	// Above 1e9 Hz the frame interval truncates to zero nanoseconds.
	for _, hz := range []int{-5, 1e9 + 1, 2000000000} {
		_, err := NewHeadlessHost(context.Background(), 2, 2, HeadlessConfig{Hz: hz})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("hz %d: err = %v", hz, err)
		}
	}
	if d, err := frameInterval(1e9); err != nil || d != time.Nanosecond {
		t.Errorf("frameInterval(1e9) = %v, %v", d, err)
	}
	if d, err := frameInterval(0); err != nil || d != 0 {
		t.Errorf("frameInterval(0) = %v, %v", d, err)
	}
}

func TestHeadlessPollIsIdle(t *testing.T) {
	hh, _ := NewHeadlessHost(context.Background(), 2, 2, HeadlessConfig{})
	in, err := hh.Poll()
	if err != nil || in.Quit || in.Held != 0 {
		t.Errorf("Poll = %+v, %v", in, err)
	}
}
