package sim

import "math"

// Beta is the fraction of the interaction radius inside which every pair
// repels, regardless of the attraction matrix.
const Beta float32 = 0.3

// Force maps a distance normalized to the interaction radius and an
// attraction coefficient to a radial force magnitude. Negative values repel.
//
// Below Beta the result is a linear ramp from -1 up to 0. Between Beta and 1
// it is a tent peaking at a when r = (1+Beta)/2. From 1 on it is 0.
func Force(r, a float32) float32 {
	switch {
	case r < Beta:
		return r/Beta - 1
	case Beta < r && r < 1:
		return a * (1 - float32(math.Abs(float64(2*r-1-Beta)))/(1-Beta))
	default:
		return 0
	}
}

// Wrap folds x into the periodic domain [-1, 1).
// Applied to a difference of two coordinates it yields the shortest
// periodic displacement.
func Wrap(x float32) float32 {
	if x >= -1 && x < 1 {
		return x
	}
	w := float32(math.Mod(float64(x)+1, 2))
	if w < 0 {
		w += 2
	}
	w--
	// float32 rounding of values just below -1 can land on +1
	if w >= 1 {
		w -= 2
	}
	return w
}
