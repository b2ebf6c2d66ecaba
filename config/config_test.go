package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivierh59500/particle-life-term/sim"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "particle-life.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	conf := Default()
	if err := conf.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if conf.Sim() != sim.DefaultConfig() {
		t.Errorf("Default physics %+v differ from engine defaults %+v", conf.Sim(), sim.DefaultConfig())
	}
	pos, mat, err := conf.Modes()
	if err != nil || pos != sim.PositionCentered || mat != sim.MatrixRandom {
		t.Errorf("Default modes = %v, %v, %v", pos, mat, err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
n = 1200
radius = 0.08
matrix_mode = "snakes"
seed = 7

[view]
density_chars = "-+#"
trail = true

[run]
frontend = "text"
steps_per_frame = 3
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conf.Simulation.N != 1200 || conf.Simulation.Radius != 0.08 || conf.Simulation.Seed != 7 {
		t.Errorf("simulation section not applied: %+v", conf.Simulation)
	}
	if conf.Simulation.M != 6 || conf.Simulation.DT != 0.02 {
		t.Errorf("untouched keys lost their defaults: %+v", conf.Simulation)
	}
	if _, mat, _ := conf.Modes(); mat != sim.MatrixSnakes {
		t.Errorf("matrix mode = %v, want snakes", mat)
	}
	if conf.View.DensityChars != "-+#" || !conf.View.Trail {
		t.Errorf("view section not applied: %+v", conf.View)
	}
	if conf.Run.Frontend != FrontendText || conf.Run.StepsPerFrame != 3 {
		t.Errorf("run section not applied: %+v", conf.Run)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[simulation]\nparticles = 3\n", "unknown keys"},
		{"bad syntax", "[simulation\n", "particle-life.toml"},
		{"bad radius", "[simulation]\nradius = 0.9\n", "3x3"},
		{"bad mode", "[simulation]\nposition_mode = \"ring\"\n", "unknown mode"},
		{"bad frontend", "[run]\nfrontend = \"gl\"\n", "unknown frontend"},
		{"empty chars", "[view]\ndensity_chars = \"\"\n", "density chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	conf := Default()
	conf.Simulation.N = 0
	conf.View.ColorMode = 4
	err := conf.Validate()
	if !errors.Is(err, sim.ErrInvalidPopulation) {
		t.Errorf("error %v does not wrap ErrInvalidPopulation", err)
	}
	if !strings.Contains(err.Error(), "color mode") {
		t.Errorf("error %v does not report the colour mode", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
