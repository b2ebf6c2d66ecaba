package ui

import (
	"math/rand"
	"testing"

	"github.com/olivierh59500/particle-life-term/config"
	"github.com/olivierh59500/particle-life-term/sim"
)

// newTestDriver builds a small seeded simulation with a fixed 40x12 view.
func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	conf := config.Default()
	conf.Simulation.N = 200
	conf.Simulation.M = 3
	conf.View.Width, conf.View.Height = 40, 12
	conf.Run.StepsPerFrame = 2

	pos, mat, err := conf.Modes()
	if err != nil {
		t.Fatalf("Modes failed: %v", err)
	}
	s, err := sim.New(conf.Sim(), rand.New(rand.NewSource(3)), pos, mat)
	if err != nil {
		t.Fatalf("sim.New failed: %v", err)
	}
	settings := NewSettings(conf)
	settings.FitZoom()
	return NewDriver(s, settings)
}

// placeSingle leaves one particle of the given type at the domain center.
func placeSingle(t *testing.T, d *Driver, typ int) {
	t.Helper()
	if err := d.Sim.Resize(1, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	d.Sim.Particles[0] = sim.Particle{Type: typ}
	d.Settings.Paused = true
}
