package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
)

const controlsHelp = `Controls:
w, a, s, d:            rotates camera
up, down, right, left: moves camera
=, -:                  zooms in and out
Esc:                   exits program
`

type options struct {
	configPath string
	headless   bool
	hz         int
	ticks      uint64
	snapshot   string
	arms       int
	workers    int
	logLevel   string
}

func main() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()

	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to a YAML config file.")
	flag.BoolVar(&o.headless, "headless", false, "Run without a window.")
	flag.IntVar(&o.hz, "hz", -1, "Frame rate in headless mode (0 = unpaced).")
	flag.Uint64Var(&o.ticks, "ticks", 0, "Stop after N ticks (0 = run until quit).")
	flag.StringVar(&o.snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.IntVar(&o.arms, "arms", -1, "Number of arms.")
	flag.IntVar(&o.workers, "workers", -1, "Goroutines computing arm poses.")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error).")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(o options) (*Config, error) {
	cfg := DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.headless {
		cfg.Headless.Enabled = true
	}
	if o.hz >= 0 {
		cfg.Headless.Hz = o.hz
	}
	if o.ticks > 0 {
		cfg.Headless.Ticks = o.ticks
	}
	if o.snapshot != "" {
		cfg.Headless.Snapshot = o.snapshot
	}
	if o.arms >= 0 {
		cfg.Arms.Count = o.arms
	}
	if o.workers >= 0 {
		cfg.Workers = o.workers
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, o options, out io.Writer) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	logger, logCloser, err := NewLogger(cfg.Log, out)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	keymap, err := ParseKeymap(cfg.Controls.Keys)
	if err != nil {
		return err
	}

	var host Host
	if cfg.Headless.Enabled {
		hh, err := NewHeadlessHost(ctx, cfg.Window.Width, cfg.Window.Height, cfg.Headless)
		if err != nil {
			return err
		}
		defer func() {
			if err := hh.Close(); err != nil {
				logger.Warnf("snapshot not written: %v", err)
			}
		}()
		host = hh
		logger.Infof("running headless at %d Hz", cfg.Headless.Hz)
	} else {
		wh, err := NewWindowHost(cfg.Window, keymap)
		if err != nil {
			return err
		}
		defer wh.Close()
		host = wh
		fmt.Fprint(out, controlsHelp)
	}

	loop := NewLoop(NewSimulation(cfg), host, LoopOptions{
		Controls: cfg.ControlRates(),
		Style:    NewStyle(cfg.Render),
		Workers:  cfg.Workers,
		MaxTicks: cfg.Headless.Ticks,
		Logger:   logger,
	})
	return loop.Run(ctx)
}
