package vals

import (
	"fmt"
	"math"
	"strconv"
)

// Color is a color with linear (not gamma-encoded) red, green, blue and alpha
// channels. Components may lie outside [0, 1] for colors outside the sRGB
// gamut.
type Color struct {
	R, G, B, A float32
}

// ColorFromSRGB8 converts gamma-encoded 8-bit sRGB channels to a Color. Alpha
// is always linear.
func ColorFromSRGB8(r, g, b, a uint8) Color {
	return Color{
		srgbToLinear(float64(r) / 255),
		srgbToLinear(float64(g) / 255),
		srgbToLinear(float64(b) / 255),
		float32(float64(a) / 255),
	}
}

// ColorFromRGBA32 converts a packed 0xRRGGBBAA sRGB value to a Color.
func ColorFromRGBA32(x uint32) Color {
	return ColorFromSRGB8(uint8(x>>24), uint8(x>>16), uint8(x>>8), uint8(x))
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". A missing alpha is opaque.
func ParseColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	x, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(s) == 7 {
		x = x<<8 | 0xff
	}
	return ColorFromRGBA32(uint32(x)), nil
}

// SRGB8 converts the color back to gamma-encoded 8-bit channels, clamping
// out-of-gamut components.
func (c Color) SRGB8() (r, g, b, a uint8) {
	return to8(linearToSRGB(float64(c.R))), to8(linearToSRGB(float64(c.G))),
		to8(linearToSRGB(float64(c.B))), to8(float64(c.A))
}

// Hex returns the color as "#rrggbbaa".
func (c Color) Hex() string {
	r, g, b, a := c.SRGB8()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func srgbToLinear(u float64) float32 {
	if u <= 0.04045 {
		return float32(u / 12.92)
	}
	return float32(math.Pow((u+0.055)/1.055, 2.4))
}

func linearToSRGB(u float64) float64 {
	if u <= 0.0031308 {
		return u * 12.92
	}
	return 1.055*math.Pow(u, 1/2.4) - 0.055
}

func to8(u float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, u)) * 255))
}
