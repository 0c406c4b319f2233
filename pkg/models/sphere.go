package models

import (
	"math"

	"github.com/chronoglobe/globe/pkg/math3d"
)

// NewSphere generates a UV sphere with equirectangular texture
// coordinates: u wraps longitude, v runs from the south pole (0) to the
// north pole (1). Faces are wound counter-clockwise seen from outside.
//
// segments is the longitude subdivision count, rings the latitude count.
// Values below 3/2 are raised to the minimum.
func NewSphere(radius float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := NewMesh("sphere")
	m.Vertices = make([]MeshVertex, 0, (rings+1)*(segments+1))

	// The seam column is duplicated (j == 0 and j == segments) so u can
	// interpolate from 0 to 1 without wrapping mid-triangle.
	for i := 0; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings) // 0 = north pole
		sinT, cosT := math.Sin(theta), math.Cos(theta)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			pos := math3d.V3(
				radius*sinT*math.Cos(phi),
				radius*cosT,
				radius*sinT*math.Sin(phi),
			)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: pos,
				Normal:   pos.Normalize(),
				UV: math3d.V2(
					float64(j)/float64(segments),
					1-theta/math.Pi,
				),
			})
		}
	}

	cols := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := i*cols + j
			b := (i+1)*cols + j
			c := (i+1)*cols + j + 1
			d := i*cols + j + 1
			if i > 0 {
				m.Faces = append(m.Faces, [3]int{a, d, c})
			}
			if i < rings-1 {
				m.Faces = append(m.Faces, [3]int{a, c, b})
			}
		}
	}

	m.CalculateBounds()
	return m
}
