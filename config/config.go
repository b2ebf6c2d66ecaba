// Package config loads run settings from TOML files on top of built-in
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/olivierh59500/particle-life-term/sim"
)

// Frontend names.
const (
	FrontendTerminal = "terminal" // full-screen interactive
	FrontendText     = "text"     // frames printed to stdout
	FrontendInPlace  = "inplace"  // like text, redrawn over the previous frame
	FrontendWindow   = "window"   // graphical window
)

// NumColorModes is the highest colour mode; 0 is black and white.
const NumColorModes = 1

// MaxDensityChars bounds the density glyph string.
const MaxDensityChars = 10

// Simulation holds the physics and seeding parameters.
type Simulation struct {
	N                int     `toml:"n"`
	M                int     `toml:"m"`
	Radius           float32 `toml:"radius"`
	DT               float32 `toml:"dt"`
	FrictionHalfLife float32 `toml:"friction_half_life"`
	ForceFactor      float32 `toml:"force_factor"`
	Workers          int     `toml:"workers"`
	PositionMode     string  `toml:"position_mode"`
	MatrixMode       string  `toml:"matrix_mode"`
	Seed             int64   `toml:"seed"` // negative: seed from the clock
}

// View holds the output settings.
type View struct {
	Width        int     `toml:"width"`  // 0: size of the terminal or window
	Height       int     `toml:"height"` // 0: size of the terminal or window
	Zoom         float32 `toml:"zoom"`   // 0: fit the domain width
	DensityChars string  `toml:"density_chars"`
	ColorMode    int     `toml:"color_mode"`
	Trail        bool    `toml:"trail"`
	ShowInfo     bool    `toml:"show_info"`
}

// Run holds the frame loop settings.
type Run struct {
	Frontend      string `toml:"frontend"`
	StepsPerFrame int    `toml:"steps_per_frame"`
	SkipFrames    int    `toml:"skip_frames"`
	Paused        bool   `toml:"paused"`
	Once          bool   `toml:"once"` // quit after the first rendered frame
	Debug         bool   `toml:"debug"`
}

// Config is the complete set of run settings.
type Config struct {
	Simulation Simulation `toml:"simulation"`
	View       View       `toml:"view"`
	Run        Run        `toml:"run"`
}

// Default returns the built-in settings.
func Default() *Config {
	def := sim.DefaultConfig()
	return &Config{
		Simulation: Simulation{
			N:                def.N,
			M:                def.M,
			Radius:           def.RMax,
			DT:               def.DT,
			FrictionHalfLife: def.FrictionHalfLife,
			ForceFactor:      def.ForceFactor,
			PositionMode:     sim.PositionCentered.String(),
			MatrixMode:       sim.MatrixRandom.String(),
			Seed:             -1,
		},
		View: View{
			Width:        80,
			Height:       24,
			DensityChars: ".:oO80@",
			ColorMode:    1,
		},
		Run: Run{
			Frontend:      FrontendTerminal,
			StepsPerFrame: 10,
		},
	}
}

// Load decodes the TOML file at path over the defaults. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Sim converts the physics section to the engine configuration.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		RMax:             c.Simulation.Radius,
		FrictionHalfLife: c.Simulation.FrictionHalfLife,
		ForceFactor:      c.Simulation.ForceFactor,
		DT:               c.Simulation.DT,
		N:                c.Simulation.N,
		M:                c.Simulation.M,
		Workers:          c.Simulation.Workers,
	}
}

// Modes parses the configured seeding modes.
func (c *Config) Modes() (sim.PositionMode, sim.MatrixMode, error) {
	pos, err := sim.ParsePositionMode(c.Simulation.PositionMode)
	if err != nil {
		return 0, 0, err
	}
	mat, err := sim.ParseMatrixMode(c.Simulation.MatrixMode)
	if err != nil {
		return 0, 0, err
	}
	return pos, mat, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Sim().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.Modes(); err != nil {
		errs = append(errs, err)
	}
	if c.View.Width < 0 || c.View.Height < 0 {
		errs = append(errs, fmt.Errorf("view size must not be negative: %dx%d", c.View.Width, c.View.Height))
	}
	if c.View.Zoom < 0 {
		errs = append(errs, fmt.Errorf("zoom must not be negative: %v", c.View.Zoom))
	}
	if n := len(c.View.DensityChars); n == 0 || n > MaxDensityChars {
		errs = append(errs, fmt.Errorf("density chars must hold 1 to %d characters, got %q", MaxDensityChars, c.View.DensityChars))
	}
	if c.View.ColorMode < 0 || c.View.ColorMode > NumColorModes {
		errs = append(errs, fmt.Errorf("color mode must be between 0 and %d, got %d", NumColorModes, c.View.ColorMode))
	}
	switch c.Run.Frontend {
	case FrontendTerminal, FrontendText, FrontendInPlace, FrontendWindow:
	default:
		errs = append(errs, fmt.Errorf("unknown frontend %q", c.Run.Frontend))
	}
	if c.Run.StepsPerFrame < 0 {
		errs = append(errs, fmt.Errorf("steps per frame must not be negative: %d", c.Run.StepsPerFrame))
	}
	if c.Run.SkipFrames < 0 {
		errs = append(errs, fmt.Errorf("skip frames must not be negative: %d", c.Run.SkipFrames))
	}
	return errors.Join(errs...)
}
