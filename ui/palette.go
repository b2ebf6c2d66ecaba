package ui

import (
	"image/color"
	"math"
)

// PaletteIndex is the 256-colour palette entry of a particle type: red,
// green, yellow, blue... in terminal order.
func PaletteIndex(t int) int {
	return t%255 + 1
}

// TypeColor spreads types evenly around the hue circle at full brightness.
func TypeColor(t, types int) color.RGBA {
	if types <= 0 {
		types = 1
	}
	return hueColor(float64(t)/float64(types)*360, 1)
}

// Shade darkens c according to a density level in [0, 1].
func Shade(c color.RGBA, level float64) color.RGBA {
	level = math.Max(0, math.Min(1, level))
	return color.RGBA{
		uint8(float64(c.R) * level),
		uint8(float64(c.G) * level),
		uint8(float64(c.B) * level),
		255,
	}
}

// hueColor is a fully saturated colour of hue h (degrees) and value v.
func hueColor(h, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sector := int(h / 60)
	frac := h/60 - float64(sector)
	hi := uint8(v * 255)
	rise := uint8(v * frac * 255)
	fall := uint8(v * (1 - frac) * 255)

	rgb := [6][3]uint8{
		{hi, rise, 0},
		{fall, hi, 0},
		{0, hi, rise},
		{0, fall, hi},
		{rise, 0, hi},
		{hi, 0, fall},
	}[sector%6]
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}
}
