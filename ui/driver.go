package ui

import (
	"log"
	"time"

	"github.com/olivierh59500/particle-life-term/sim"
)

// Stats holds timings of the last frame, in milliseconds.
type Stats struct {
	Step   float64 // per step
	Raster float64
	Render float64
	Input  float64
	Frame  float64
}

// FPS estimates frames per second from the last frame.
func (st Stats) FPS() float64 {
	if st.Frame <= 0 {
		return 0
	}
	return 1000 / st.Frame
}

// Driver advances the simulation and produces one raster per frame.
// All frontends call it from a single goroutine.
type Driver struct {
	Sim      *sim.Simulation
	Settings *Settings
	Stats    Stats

	raster *sim.DensityRaster
}

// NewDriver pairs a simulation with its presentation state.
func NewDriver(s *sim.Simulation, settings *Settings) *Driver {
	return &Driver{Sim: s, Settings: settings}
}

// Raster returns the raster of the last frame.
func (d *Driver) Raster() *sim.DensityRaster { return d.raster }

// Frame runs StepsPerFrame steps unless paused, then rasterizes.
func (d *Driver) Frame() error {
	if !d.Settings.Paused && d.Settings.StepsPerFrame > 0 {
		start := time.Now()
		for i := 0; i < d.Settings.StepsPerFrame; i++ {
			if err := d.Sim.Step(); err != nil {
				return err
			}
		}
		d.Stats.Step = ms(time.Since(start)) / float64(d.Settings.StepsPerFrame)
	}
	d.Rasterize()
	return nil
}

// Rasterize refreshes the raster without stepping.
func (d *Driver) Rasterize() {
	start := time.Now()
	d.raster = d.Sim.Rasterize(d.Settings.ViewTransform())
	d.Stats.Raster = ms(time.Since(start))
}

// Warmup renders frames silently before the first visible one. An unset
// zoom is fitted to the current viewport first so trail counts gathered
// here land where the visible frames will put them.
func (d *Driver) Warmup(frames int) error {
	if frames <= 0 {
		return nil
	}
	if d.Settings.Zoom == 0 {
		d.Settings.FitZoom()
	}
	paused := d.Settings.Paused
	d.Settings.Paused = false
	defer func() { d.Settings.Paused = paused }()
	for i := 0; i < frames; i++ {
		if err := d.Frame(); err != nil {
			return err
		}
	}
	log.Printf("warmup: %d frames of %d steps", frames, d.Settings.StepsPerFrame)
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
