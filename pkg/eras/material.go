package eras

import "github.com/chronoglobe/globe/pkg/render"

// Surface colors used while no texture is installed.
var (
	// PlaceholderColor is the neutral gray shown while a fetch is in
	// flight.
	PlaceholderColor = render.RGB(136, 136, 136)
	// FallbackColor is the mid blue substituted when a fetch fails.
	FallbackColor = render.RGB(51, 102, 170)
)

// Material is the globe's mutable surface state: either a flat color or
// a texture map. It is read by the renderer every frame and mutated only
// on the frame loop goroutine; loader completions reach it through
// Loader.Apply.
type Material struct {
	color   render.Color
	texture *render.Texture
}

// NewMaterial creates a material showing the placeholder color.
func NewMaterial() *Material {
	return &Material{color: PlaceholderColor}
}

// SetColor switches the surface to a flat color and drops any map.
func (m *Material) SetColor(c render.Color) {
	m.color = c
	m.texture = nil
}

// SetTexture installs a texture map.
func (m *Material) SetTexture(t *render.Texture) {
	m.texture = t
}

// Texture returns the current texture map, or nil when the surface is a
// flat color.
func (m *Material) Texture() *render.Texture {
	return m.texture
}

// Color returns the flat surface color. Meaningful only while Texture
// returns nil.
func (m *Material) Color() render.Color {
	return m.color
}
