package rendering

import "math"

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// Channels returns the alpha, red, green and blue bytes.
func (c Color) Channels() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the color with the given alpha (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Lighten moves each channel toward white by the given factor (0-1).
// Used for the hover appearance of interactive widgets.
func (c Color) Lighten(factor float64) Color {
	f := clamp01(factor)
	a, r, g, b := c.Channels()
	lift := func(ch uint8) uint8 {
		return uint8(math.Round(float64(ch) + (maxByte-float64(ch))*f))
	}
	return RGBA8(lift(r), lift(g), lift(b), a)
}

// Darken scales each channel toward black by the given factor (0-1).
// Used for the pressed appearance of interactive widgets.
func (c Color) Darken(factor float64) Color {
	f := 1 - clamp01(factor)
	a, r, g, b := c.Channels()
	scale := func(ch uint8) uint8 {
		return uint8(math.Round(float64(ch) * f))
	}
	return RGBA8(scale(r), scale(g), scale(b), a)
}

// Grayscale returns the luminance-preserving gray of the color.
// Used for the disabled appearance of interactive widgets.
func (c Color) Grayscale() Color {
	a, r, g, b := c.Channels()
	// Rec. 601 luma weights.
	y := uint8(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
	return RGBA8(y, y, y, a)
}

// Lerp linearly interpolates between c and other by t in [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = clamp01(t)
	a1, r1, g1, b1 := c.Channels()
	a2, r2, g2, b2 := other.Channels()
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGBA8(mix(r1, r2), mix(g1, g2), mix(b1, b2), mix(a1, a2))
}

// alpha01ToByte converts a 0-1 alpha to 0-255 with proper rounding.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

// clamp01 clamps a value to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
