package sim

import "math"

// CharRatio is the height-to-width ratio of an output cell. Terminal
// character cells are about twice as tall as they are wide.
const CharRatio float32 = 2.0

// ViewTransform maps domain coordinates onto an output raster.
type ViewTransform struct {
	Width, Height  int     // raster size in cells
	Zoom           float32 // 1 shows the domain height across the raster height
	ShiftX, ShiftY float32 // pan, in domain units
	Trail          bool    // accumulate onto the previous counts instead of clearing
}

// FitZoom returns the zoom at which the domain width spans the raster width.
func FitZoom(width, height int) float32 {
	return float32(width) / (float32(height) * CharRatio)
}

// DensityRaster counts particles per output cell and per type.
type DensityRaster struct {
	Width, Height, Types int
	Counts               []int // Counts[(y*Width+x)*Types+t]
}

// NewDensityRaster allocates a zeroed raster.
func NewDensityRaster(width, height, types int) *DensityRaster {
	return &DensityRaster{
		Width:  width,
		Height: height,
		Types:  types,
		Counts: make([]int, width*height*types),
	}
}

// Clear zeroes every count.
func (r *DensityRaster) Clear() {
	for i := range r.Counts {
		r.Counts[i] = 0
	}
}

// Count returns the number of particles of type t in cell (x, y).
func (r *DensityRaster) Count(x, y, t int) int {
	return r.Counts[(y*r.Width+x)*r.Types+t]
}

// Dominant returns the most frequent type in cell (x, y) and its count.
// Ties go to the lowest type; an empty cell returns (0, 0).
func (r *DensityRaster) Dominant(x, y int) (int, int) {
	cell := r.Counts[(y*r.Width+x)*r.Types : (y*r.Width+x+1)*r.Types]
	maxType, maxCount := 0, 0
	for t, c := range cell {
		if c > maxCount {
			maxType, maxCount = t, c
		}
	}
	return maxType, maxCount
}

func (r *DensityRaster) fits(width, height, types int) bool {
	return r != nil && r.Width == width && r.Height == height && r.Types == types
}

// Accumulate projects every particle through v and increments the matching
// cell. Projections outside the raster are dropped.
func (r *DensityRaster) Accumulate(particles []Particle, v ViewTransform) {
	if !v.Trail {
		r.Clear()
	}

	w := r.Width
	hc := int(float32(r.Height) * CharRatio)
	halfW := float32(w / 2)
	halfH := float32(hc / 2)
	scale := v.Zoom * float32(hc) / 2

	for i := range particles {
		p := &particles[i]
		px := (p.X+v.ShiftX)*scale + halfW
		py := (p.Y+v.ShiftY)*scale + halfH

		x := int(math.Floor(float64(px)))
		y := int(math.Floor(float64(py / CharRatio)))
		if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
			continue
		}
		if p.Type < 0 || p.Type >= r.Types {
			continue
		}
		r.Counts[(y*r.Width+x)*r.Types+p.Type]++
	}
}

// Rasterize projects the particles into the simulation's raster and returns
// it. The raster is reallocated (and so cleared) when the viewport size or
// type count changes; otherwise v.Trail decides whether counts carry over.
func (s *Simulation) Rasterize(v ViewTransform) *DensityRaster {
	if v.Width < 0 {
		v.Width = 0
	}
	if v.Height < 0 {
		v.Height = 0
	}
	if !s.raster.fits(v.Width, v.Height, s.cfg.M) {
		s.raster = NewDensityRaster(v.Width, v.Height, s.cfg.M)
	}
	s.raster.Accumulate(s.Particles, v)
	return s.raster
}

// ClearRaster discards accumulated trail counts.
func (s *Simulation) ClearRaster() {
	if s.raster != nil {
		s.raster.Clear()
	}
}
