package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
)

// WrapMode controls how texture coordinates outside [0, 1] are handled.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota // tile the texture
	WrapClamp                  // clamp to the edge texel
)

// FilterMode controls texture sampling.
type FilterMode uint8

const (
	FilterNearest  FilterMode = iota // nearest texel
	FilterBilinear                   // 4-texel bilinear blend
)

// Texture is a sampled 2D image. V = 0 is the bottom row, matching the
// UV convention of the mesh generators and loaders.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates a blank texture of the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		WrapU:      WrapRepeat,
		WrapV:      WrapClamp,
		FilterMode: FilterBilinear,
	}
}

// SetPixel writes a texel.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel reads a texel. Out-of-bounds reads return black.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the texture color at (u, v) with the configured wrap and
// filter modes. V is flipped: v = 1 samples the top image row.
func (t *Texture) Sample(u, v float64) Color {
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	fx := u * float64(t.Width-1)
	fy := (1 - v) * float64(t.Height-1)

	if t.FilterMode == FilterNearest {
		return t.GetPixel(int(fx+0.5), int(fy+0.5))
	}

	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x1 >= t.Width {
		x1 = t.Width - 1
	}
	if y1 >= t.Height {
		y1 = t.Height - 1
	}
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := lerpColor(t.GetPixel(x0, y0), t.GetPixel(x1, y0), tx)
	bot := lerpColor(t.GetPixel(x0, y1), t.GetPixel(x1, y1), tx)
	return lerpColor(top, bot, ty)
}

func wrapCoord(c float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		c -= math.Floor(c)
	case WrapClamp:
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
	}
	return c
}

// NewCheckerTexture generates a two-color checkerboard, used as the
// stand-in when no real texture is available.
func NewCheckerTexture(width, height, cellSize int, a, b Color) *Texture {
	t := NewTexture(width, height)
	t.FilterMode = FilterNearest
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				t.SetPixel(x, y, a)
			} else {
				t.SetPixel(x, y, b)
			}
		}
	}
	return t
}

// NewFlatTexture generates a 1x1 solid color texture.
func NewFlatTexture(c Color) *Texture {
	t := NewTexture(1, 1)
	t.FilterMode = FilterNearest
	t.Pixels[0] = c
	return t
}

// TextureFromImage converts a decoded image into a Texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			t.SetPixel(x, y, Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}
	return t
}

// LoadTexture reads and decodes a PNG or JPEG texture from disk.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}
