package eras

import (
	"fmt"
	"math"

	"github.com/chronoglobe/globe/pkg/render"
)

// Built-in texture dimensions, 2:1 equirectangular.
const (
	texWidth  = 512
	texHeight = 256
)

// proceduralTexture paints the built-in texture for an era. Everything
// is deterministic: the same era always renders the same surface.
func proceduralTexture(name string) (*render.Texture, error) {
	switch name {
	case Modern:
		return paint(modernShade), nil
	case Ancient:
		return paint(ancientShade), nil
	case Prehistoric:
		return paint(prehistoricShade), nil
	case Dinosaurs:
		return paint(dinosaursShade), nil
	case Formation:
		return paint(formationShade), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEra, name)
	}
}

// paint fills a texture by evaluating a shade function over longitude
// [0, 2pi) and latitude [-pi/2, pi/2].
func paint(shade func(lon, lat float64) render.Color) *render.Texture {
	t := render.NewTexture(texWidth, texHeight)
	for y := 0; y < texHeight; y++ {
		// Texture row 0 is the top of the image, latitude +pi/2.
		lat := math.Pi/2 - math.Pi*float64(y)/float64(texHeight-1)
		for x := 0; x < texWidth; x++ {
			lon := 2 * math.Pi * float64(x) / float64(texWidth)
			t.SetPixel(x, y, shade(lon, lat))
		}
	}
	return t
}

// terrain is a smooth pseudo-terrain field in [-1, 1] built from layered
// sines. seed shifts the landmass layout per era.
func terrain(lon, lat, seed float64) float64 {
	v := 0.55*math.Sin(2*lon+seed)*math.Cos(3*lat+seed*0.7) +
		0.30*math.Sin(5*lon+1.7*seed+math.Sin(2*lat)) +
		0.25*math.Cos(3*lat*2.3+seed) +
		0.15*math.Sin(9*lon-4*lat+2.3*seed)
	return v / 1.25
}

// polarCap blends toward white near the poles.
func polarCap(c render.Color, lat, capStart float64) render.Color {
	a := math.Abs(lat)
	if a < capStart {
		return c
	}
	t := (a - capStart) / (math.Pi/2 - capStart)
	if t > 1 {
		t = 1
	}
	return render.Color{
		R: uint8(float64(c.R) + (235-float64(c.R))*t),
		G: uint8(float64(c.G) + (240-float64(c.G))*t),
		B: uint8(float64(c.B) + (245-float64(c.B))*t),
	}
}

func modernShade(lon, lat float64) render.Color {
	h := terrain(lon, lat, 0)
	var c render.Color
	switch {
	case h > 0.35: // mountains
		c = render.RGB(139, 125, 107)
	case h > 0.05: // lowland
		c = render.RGB(66, 132, 60)
	case h > -0.05: // coastal shallows
		c = render.RGB(52, 120, 168)
	default: // open ocean
		c = render.RGB(20, 56, 112)
	}
	return polarCap(c, lat, 1.15)
}

func ancientShade(lon, lat float64) render.Color {
	h := terrain(lon, lat, 2.1)
	var c render.Color
	switch {
	case h > 0.15:
		c = render.RGB(168, 141, 96) // parchment land
	case h > 0.0:
		c = render.RGB(124, 117, 84)
	default:
		c = render.RGB(36, 72, 108) // faded ocean
	}
	return polarCap(c, lat, 1.1)
}

func prehistoricShade(lon, lat float64) render.Color {
	// One supercontinent: a single broad landmass centered on a fixed
	// longitude, everything else ocean.
	d := math.Abs(math.Remainder(lon-2.4, 2*math.Pi))
	mass := 1.6 - d - 0.9*math.Abs(lat) + 0.35*terrain(lon, lat, 4.2)
	switch {
	case mass > 0.55:
		return render.RGB(150, 96, 60) // arid interior
	case mass > 0.2:
		return render.RGB(120, 110, 58)
	default:
		return render.RGB(24, 48, 96) // panthalassa
	}
}

func dinosaursShade(lon, lat float64) render.Color {
	h := terrain(lon, lat, 6.5)
	var c render.Color
	switch {
	case h > 0.25:
		c = render.RGB(44, 110, 44) // dense forest
	case h > 0.0:
		c = render.RGB(96, 144, 56)
	case h > -0.2:
		c = render.RGB(64, 140, 150) // warm shallow seas
	default:
		c = render.RGB(28, 76, 120)
	}
	// No ice caps in the Mesozoic.
	return c
}

func formationShade(lon, lat float64) render.Color {
	h := terrain(lon*1.5, lat*1.5, 9.3)
	switch {
	case h > 0.4:
		return render.RGB(255, 160, 48) // molten
	case h > 0.1:
		return render.RGB(196, 72, 24)
	case h > -0.2:
		return render.RGB(84, 40, 28) // cooling crust
	default:
		return render.RGB(40, 24, 22) // basalt
	}
}
