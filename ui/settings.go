// Package ui drives the simulation frame by frame and presents the density
// raster: a full-screen terminal frontend, a plain stdout frontend and the
// keyboard command layer they share.
package ui

import (
	"github.com/olivierh59500/particle-life-term/config"
	"github.com/olivierh59500/particle-life-term/sim"
)

const (
	zoomStep = 1.3
	panStep  = 0.3
)

// Settings is the mutable presentation state.
type Settings struct {
	Width, Height  int
	Zoom           float32
	ShiftX, ShiftY float32
	DensityChars   string
	ColorMode      int
	Trail          bool
	ShowInfo       bool
	ShowDebug      bool
	Paused         bool
	StepsPerFrame  int
}

// NewSettings builds presentation state from a run configuration. A zero
// zoom is resolved to fit once the viewport size is known.
func NewSettings(conf *config.Config) *Settings {
	return &Settings{
		Width:         conf.View.Width,
		Height:        conf.View.Height,
		Zoom:          conf.View.Zoom,
		DensityChars:  conf.View.DensityChars,
		ColorMode:     conf.View.ColorMode,
		Trail:         conf.View.Trail,
		ShowInfo:      conf.View.ShowInfo,
		Paused:        conf.Run.Paused,
		StepsPerFrame: conf.Run.StepsPerFrame,
	}
}

// FitZoom makes the domain span the viewport width and recenters the view.
func (s *Settings) FitZoom() {
	if s.Width > 0 && s.Height > 0 {
		s.Zoom = sim.FitZoom(s.Width, s.Height)
	} else {
		s.Zoom = 1
	}
	s.ShiftX, s.ShiftY = 0, 0
}

// ResetZoom shows the full domain height, centered.
func (s *Settings) ResetZoom() {
	s.Zoom = 1
	s.ShiftX, s.ShiftY = 0, 0
}

// ZoomIn and ZoomOut scale the view around its center.
func (s *Settings) ZoomIn()  { s.Zoom *= zoomStep }
func (s *Settings) ZoomOut() { s.Zoom /= zoomStep }

// Pan moves the view by a fraction of the visible area.
func (s *Settings) Pan(dx, dy float32) {
	s.ShiftX += dx * panStep / s.Zoom
	s.ShiftY += dy * panStep / s.Zoom
}

// ViewTransform returns the projection for the next rasterization.
func (s *Settings) ViewTransform() sim.ViewTransform {
	return sim.ViewTransform{
		Width:  s.Width,
		Height: s.Height,
		Zoom:   s.Zoom,
		ShiftX: s.ShiftX,
		ShiftY: s.ShiftY,
		Trail:  s.Trail,
	}
}

// Glyph maps a particle count to a density character; counts beyond the
// glyph string saturate on its last character.
func (s *Settings) Glyph(count int) rune {
	if count <= 0 || s.DensityChars == "" {
		return ' '
	}
	chars := []rune(s.DensityChars)
	idx := count - 1
	if idx >= len(chars) {
		idx = len(chars) - 1
	}
	return chars[idx]
}
