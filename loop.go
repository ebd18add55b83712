package main

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/sync/errgroup"
)

// State is the run state of a Loop.
type State uint8

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Simulation is everything the animation mutates: the camera and the arm
// population. Chain and YawRate are read-only while the loop runs.
type Simulation struct {
	Camera  Camera
	Arms    []Arm
	Chain   Chain
	YawRate float64
}

// NewSimulation builds the initial state described by cfg.
func NewSimulation(cfg *Config) *Simulation {
	return &Simulation{
		Camera:  NewCamera(cfg.Camera),
		Arms:    NewArms(cfg.Arms),
		Chain:   cfg.NewChain(),
		YawRate: cfg.Camera.YawRate,
	}
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	Controls Controls
	Style    Style
	// Workers bounds the goroutines used to compute arm poses.
	Workers int
	// MaxTicks stops the loop after that many ticks. Zero runs until quit.
	MaxTicks uint64
	Logger   Logger
}

// Loop drives a Simulation and draws it on a Host, one tick per frame.
// It is not safe for concurrent use.
type Loop struct {
	sim  *Simulation
	host Host
	opts LoopOptions
	log  Logger

	state State
	ticks uint64
	poses []Pose
}

// NewLoop returns a stopped loop.
func NewLoop(sim *Simulation, host Host, opts LoopOptions) *Loop {
	lg := opts.Logger
	if lg == nil {
		lg, _, _ = NewLogger(LogConfig{Level: "panic"}, io.Discard)
	}
	return &Loop{
		sim:   sim,
		host:  host,
		opts:  opts,
		log:   lg,
		poses: make([]Pose, len(sim.Arms)),
	}
}

// State returns the current run state.
func (l *Loop) State() State { return l.state }

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Poses returns the joint positions computed by the last tick, in arm order.
func (l *Loop) Poses() []Pose { return l.poses }

// Run ticks until the host asks to quit, the tick limit is reached, ctx is
// done or the host fails. Cancellation is only observed between ticks.
// A host failure is returned; ctx.Err() is returned after cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.state = Running
	defer func() { l.state = Stopped }()

	l.log.Infof("animation started: %d arms, %d workers", len(l.sim.Arms), l.opts.Workers)
	for {
		if err := ctx.Err(); err != nil {
			l.log.Infof("animation cancelled after %d ticks", l.ticks)
			return err
		}
		running, err := l.Tick()
		if err != nil {
			l.log.Errorf("animation failed after %d ticks: %v", l.ticks, err)
			return err
		}
		if !running {
			l.log.Infof("quit requested after %d ticks", l.ticks)
			return nil
		}
		if l.opts.MaxTicks > 0 && l.ticks >= l.opts.MaxTicks {
			l.log.Infof("tick limit %d reached", l.opts.MaxTicks)
			return nil
		}
	}
}

// Tick runs one frame. It reports false without drawing when the host
// asked to quit.
func (l *Loop) Tick() (bool, error) {
	in, err := l.host.Poll()
	if err != nil {
		return false, fmt.Errorf("poll input: %w", err)
	}
	if in.Quit || in.Held.Has(Quit) {
		return false, nil
	}
	cam := &l.sim.Camera
	if !l.opts.Controls.Apply(cam, in.Held) {
		l.log.WithField("tick", l.ticks).WithField("zoom", cam.Zoom).Debugf("zoom out refused")
	}

	st := l.opts.Style
	l.host.Clear(st.Background)
	if st.ShowAxis {
		l.drawAxes()
	}

	if err := l.advance(); err != nil {
		return false, err
	}
	for _, p := range l.poses {
		l.drawPose(p)
	}

	cam.Yaw += l.sim.YawRate

	if err := l.host.Present(); err != nil {
		return false, fmt.Errorf("present frame: %w", err)
	}
	l.ticks++
	return true, nil
}

// advance moves every arm one step and stores its new pose. Arms only read
// the shared chain, so disjoint ranges can be computed in parallel.
func (l *Loop) advance() error {
	arms := l.sim.Arms
	if len(l.poses) != len(arms) {
		l.poses = make([]Pose, len(arms))
	}
	w := l.opts.Workers
	if w <= 1 || len(arms) < 2 {
		l.step(0, len(arms))
		return nil
	}

	var g errgroup.Group
	g.SetLimit(w)
	chunk := (len(arms) + w - 1) / w
	for lo := 0; lo < len(arms); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(arms))
		g.Go(func() error {
			l.step(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func (l *Loop) step(lo, hi int) {
	chain := l.sim.Chain
	for i := lo; i < hi; i++ {
		l.sim.Arms[i].Advance()
		l.poses[i] = chain.Joints(l.sim.Arms[i])
	}
}

func (l *Loop) line(a, b Vec3, c color.RGBA) {
	cam := l.sim.Camera
	l.host.DrawLine(cam.Project(a), cam.Project(b), c, l.opts.Style.LineWidth)
}

func (l *Loop) point(p Vec3, c color.RGBA) {
	l.host.DrawPoint(l.sim.Camera.Project(p), c, l.opts.Style.PointRadius)
}

func (l *Loop) drawAxes() {
	st := l.opts.Style
	n := st.AxisLength
	var origin Vec3
	l.line(origin, Vec3{X: n}, st.AxisColors[0])
	l.line(origin, Vec3{Y: n}, st.AxisColors[1])
	l.line(origin, Vec3{Z: n}, st.AxisColors[2])
}

func (l *Loop) drawPose(p Pose) {
	st := l.opts.Style
	l.point(p.Base, st.PointColor)
	l.point(p.P1, st.JointColors[0])
	l.line(p.Base, p.P1, st.LineColor)
	l.point(p.P2, st.JointColors[1])
	l.line(p.P1, p.P2, st.LineColor)
	l.point(p.P3, st.JointColors[2])
	l.line(p.P2, p.P3, st.LineColor)
}
