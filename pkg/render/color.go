// Package render implements the software rasterizer that draws the globe:
// framebuffer, textures, camera, and z-buffered triangle scan conversion.
package render

// Color is an 8-bit RGB color. The framebuffer is opaque, so no alpha.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
	ColorRed   = Color{255, 0, 0}
	ColorGreen = Color{0, 255, 0}
	ColorBlue  = Color{0, 0, 255}
)

// RGB creates a Color from components.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// MultiplyColor scales a color by a factor, clamping to 255.
func MultiplyColor(c Color, f float64) Color {
	return Color{
		R: clampByte(float64(c.R) * f),
		G: clampByte(float64(c.G) * f),
		B: clampByte(float64(c.B) * f),
	}
}

// ModulateColor multiplies two colors component-wise (a * b / 255).
func ModulateColor(a, b Color) Color {
	return Color{
		R: uint8(int(a.R) * int(b.R) / 255),
		G: uint8(int(a.G) * int(b.G) / 255),
		B: uint8(int(a.B) * int(b.B) / 255),
	}
}

// lerpColor interpolates between two colors, t in [0, 1].
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// clampByte rounds to the nearest byte value. Rounding matters: the
// interpolated light term lands a hair under 1 even at full brightness,
// and truncation would dim every full-bright texel by one unit.
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
