package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessHost renders into memory without opening a window. Frames are
// paced by a ticker when Hz is positive.
type HeadlessHost struct {
	*Canvas

	ctx      context.Context
	ticker   *time.Ticker
	snapshot string
	frames   uint64
}

// NewHeadlessHost returns a host with a w x h canvas. The pacing wait gives
// up as soon as ctx is done.
func NewHeadlessHost(ctx context.Context, w, h int, cfg HeadlessConfig) (*HeadlessHost, error) {
	interval, err := frameInterval(cfg.Hz)
	if err != nil {
		return nil, err
	}
	hh := &HeadlessHost{
		Canvas:   NewCanvas(w, h),
		ctx:      ctx,
		snapshot: cfg.Snapshot,
	}
	if interval > 0 {
		hh.ticker = time.NewTicker(interval)
	}
	return hh, nil
}

// frameInterval returns the pacing period for hz frames per second. Zero hz
// means unpaced and yields a zero interval.
func frameInterval(hz int) (time.Duration, error) {
	if hz < 0 {
		return 0, fmt.Errorf("%w: headless hz %d", ErrInvalidConfig, hz)
	}
	if hz == 0 {
		return 0, nil
	}
	d := time.Second / time.Duration(hz)
	if d <= 0 {
		return 0, fmt.Errorf("%w: headless hz %d is above one frame per nanosecond", ErrInvalidConfig, hz)
	}
	return d, nil
}

// Poll never reports input.
func (hh *HeadlessHost) Poll() (InputState, error) {
	return InputState{}, nil
}

// Present waits for the next frame slot.
func (hh *HeadlessHost) Present() error {
	hh.frames++
	if hh.ticker == nil {
		return nil
	}
	select {
	case <-hh.ctx.Done():
	case <-hh.ticker.C:
	}
	return nil
}

// Frames returns the number of presented frames.
func (hh *HeadlessHost) Frames() uint64 {
	return hh.frames
}

// Close stops pacing and writes the last frame to the snapshot path, if
// one is set.
func (hh *HeadlessHost) Close() error {
	if hh.ticker != nil {
		hh.ticker.Stop()
	}
	if hh.snapshot == "" {
		return nil
	}
	f, err := os.Create(hh.snapshot)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, hh.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
