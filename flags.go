package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/olivierh59500/particle-life-term/config"
)

// parseFlags builds the run configuration: built-in defaults, then the
// optional -config file, then every flag given explicitly.
func parseFlags(args []string, output io.Writer) (*config.Config, error) {
	def := config.Default()
	fs := flag.NewFlagSet("particle-life", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage:\n  particle-life [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "TOML configuration `file`")
		n          = fs.Int("n", def.Simulation.N, "number of particles")
		m          = fs.Int("m", def.Simulation.M, "number of colors")
		matrixMode = fs.String("a", def.Simulation.MatrixMode, "attraction `mode`: 1 random, 2 snakes")
		radius     = fs.Float64("r", float64(def.Simulation.Radius), "maximum interaction radius")
		dt         = fs.Float64("t", float64(def.Simulation.DT), "delta time in seconds")
		friction   = fs.Float64("f", float64(def.Simulation.FrictionHalfLife), "friction half-life in seconds")
		force      = fs.Float64("F", float64(def.Simulation.ForceFactor), "force factor")
		workers    = fs.Int("j", def.Simulation.Workers, "force workers, 0 for one per CPU")
		posMode    = fs.String("p", def.Simulation.PositionMode, "position `mode`: 1 uniform, 2 centered, 3 horizontal, 4 spiral, 5 noise")
		zoom       = fs.Float64("z", 0, "zoom (default: fit the width)")
		info       = fs.Bool("i", false, "show interface")
		chars      = fs.String("x", def.View.DensityChars, "characters to represent density")
		seed       = fs.Int64("s", -1, "random seed (non-negative integer)")
		colorMode  = fs.Int("c", def.View.ColorMode, "color mode: 0 black and white, 1 color")
		noClear    = fs.Bool("d", false, "disables clearing of the render buffer")
		text       = fs.Bool("o", false, "output to stdout (disables GUI)")
		inPlace    = fs.Bool("O", false, "like -o, but draws the frames in-place")
		gui        = fs.Bool("w", false, "render into a window instead of the terminal")
		once       = fs.Bool("q", false, "quit after the first rendered frame")
		width      = fs.Int("W", def.View.Width, "width of the text output")
		height     = fs.Int("H", def.View.Height, "height of the text output")
		paused     = fs.Bool("P", false, "launch paused")
		steps      = fs.Int("k", def.Run.StepsPerFrame, "steps per frame")
		skip       = fs.Int("K", 0, "frames to render silently before start")
		debugLog   = fs.Bool("debug", false, "write a debug log to logs/")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	conf := def
	if *configPath != "" {
		var err error
		if conf, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}

	var errs []error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			conf.Simulation.N = *n
		case "m":
			conf.Simulation.M = *m
		case "a":
			conf.Simulation.MatrixMode = *matrixMode
		case "r":
			conf.Simulation.Radius = float32(*radius)
		case "t":
			conf.Simulation.DT = float32(*dt)
		case "f":
			conf.Simulation.FrictionHalfLife = float32(*friction)
		case "F":
			conf.Simulation.ForceFactor = float32(*force)
		case "j":
			conf.Simulation.Workers = *workers
		case "p":
			conf.Simulation.PositionMode = *posMode
		case "s":
			if *seed < 0 {
				errs = append(errs, errors.New("seed must be a non-negative integer"))
			}
			conf.Simulation.Seed = *seed
		case "z":
			conf.View.Zoom = float32(*zoom)
		case "i":
			conf.View.ShowInfo = *info
		case "x":
			conf.View.DensityChars = *chars
		case "c":
			conf.View.ColorMode = *colorMode
		case "d":
			conf.View.Trail = *noClear
		case "W":
			conf.View.Width = *width
		case "H":
			conf.View.Height = *height
		case "P":
			conf.Run.Paused = *paused
		case "k":
			conf.Run.StepsPerFrame = *steps
		case "K":
			conf.Run.SkipFrames = *skip
		case "q":
			conf.Run.Once = *once
		case "debug":
			conf.Run.Debug = *debugLog
		}
	})

	switch {
	case *inPlace:
		conf.Run.Frontend = config.FrontendInPlace
	case *text:
		conf.Run.Frontend = config.FrontendText
	case *gui:
		conf.Run.Frontend = config.FrontendWindow
	}
	// a single frame on a full-screen terminal would vanish immediately
	if conf.Run.Once && conf.Run.Frontend == config.FrontendTerminal {
		conf.Run.Frontend = config.FrontendText
	}

	if err := conf.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return conf, nil
}
