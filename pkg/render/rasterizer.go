package render

import (
	"math"

	"github.com/chronoglobe/globe/pkg/math3d"
)

// MeshRenderer is the geometry interface the rasterizer consumes.
// models.Mesh implements it.
type MeshRenderer interface {
	// GetVertex returns position, normal, and UV for vertex i.
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	// GetFace returns the three vertex indices of face i.
	GetFace(i int) [3]int
	// FaceCount returns the number of faces.
	FaceCount() int
}

// Vertex is a single rasterizer input vertex in world space.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Color    Color
}

// Triangle is one rasterizer input primitive.
type Triangle struct {
	V [3]Vertex
}

// screenVertex is a projected vertex with perspective-correct attributes.
type screenVertex struct {
	x, y float64 // screen pixels
	z    float64 // NDC depth
	invW float64 // 1/w for perspective-correct interpolation
	uOW  float64 // u/w
	vOW  float64 // v/w
	lit  float64 // lambert term, interpolated linearly in screen space
}

// Rasterizer draws triangles into a framebuffer with z-buffering and a
// single directional light.
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer
	depth  []float64

	// Ambient is the minimum light term so the night side stays visible.
	Ambient float64

	// DisableBackfaceCulling draws both sides of every triangle.
	DisableBackfaceCulling bool
}

// NewRasterizer creates a rasterizer bound to a camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:  camera,
		fb:      fb,
		Ambient: 0.25,
	}
	r.ClearDepth()
	return r
}

// SetFramebuffer rebinds the rasterizer to a new framebuffer, used when
// the viewport is resized.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	r.depth = nil
	r.ClearDepth()
}

// ClearDepth resets the z-buffer. Call once per frame before drawing.
func (r *Rasterizer) ClearDepth() {
	n := r.fb.Width * r.fb.Height
	if len(r.depth) != n {
		r.depth = make([]float64, n)
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

// DrawMeshTextured draws the mesh with a texture and lambert lighting.
func (r *Rasterizer) DrawMeshTextured(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, lightDir math3d.Vec3) {
	vp := r.camera.ViewProjection()
	light := lightDir.Normalize()
	for i := 0; i < mesh.FaceCount(); i++ {
		tri := buildTriangle(mesh, mesh.GetFace(i), transform, ColorWhite)
		r.rasterizeTriangle(tri, vp, tex, light)
	}
}

// DrawMeshGouraud draws the mesh in a flat color with lambert lighting.
func (r *Rasterizer) DrawMeshGouraud(mesh MeshRenderer, transform math3d.Mat4, color Color, lightDir math3d.Vec3) {
	vp := r.camera.ViewProjection()
	light := lightDir.Normalize()
	for i := 0; i < mesh.FaceCount(); i++ {
		tri := buildTriangle(mesh, mesh.GetFace(i), transform, color)
		r.rasterizeTriangle(tri, vp, nil, light)
	}
}

// DrawMeshWireframe draws only the triangle edges, ignoring depth.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	vp := r.camera.ViewProjection()
	for i := 0; i < mesh.FaceCount(); i++ {
		face := mesh.GetFace(i)
		var sv [3]screenVertex
		ok := true
		for j, idx := range face {
			p, _, _ := mesh.GetVertex(idx)
			v, visible := r.project(vp, transform.MulVec3(p))
			if !visible {
				ok = false
				break
			}
			sv[j] = v
		}
		if !ok {
			continue
		}
		r.drawLine(sv[0], sv[1], color)
		r.drawLine(sv[1], sv[2], color)
		r.drawLine(sv[2], sv[0], color)
	}
}

// buildTriangle transforms one face into a world-space Triangle.
func buildTriangle(mesh MeshRenderer, face [3]int, transform math3d.Mat4, color Color) Triangle {
	var tri Triangle
	for j, idx := range face {
		p, n, uv := mesh.GetVertex(idx)
		tri.V[j] = Vertex{
			Position: transform.MulVec3(p),
			Normal:   transform.MulVec3Dir(n).Normalize(),
			UV:       uv,
			Color:    color,
		}
	}
	return tri
}

// project maps a world-space point to a screen vertex. The second return
// is false when the point is behind the near plane.
func (r *Rasterizer) project(vp math3d.Mat4, p math3d.Vec3) (screenVertex, bool) {
	clip := vp.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return screenVertex{}, false
	}
	ndc := clip.PerspectiveDivide()
	return screenVertex{
		x:    (ndc.X + 1) / 2 * float64(r.fb.Width),
		y:    (1 - ndc.Y) / 2 * float64(r.fb.Height),
		z:    ndc.Z,
		invW: 1 / clip.W,
	}, true
}

func (r *Rasterizer) rasterizeTriangle(tri Triangle, vp math3d.Mat4, tex *Texture, light math3d.Vec3) {
	var sv [3]screenVertex
	for j := range tri.V {
		v, visible := r.project(vp, tri.V[j].Position)
		if !visible {
			return
		}
		lit := tri.V[j].Normal.Dot(light)
		if lit < 0 {
			lit = 0
		}
		lit = r.Ambient + (1-r.Ambient)*lit
		v.lit = lit
		v.uOW = tri.V[j].UV.X * v.invW
		v.vOW = tri.V[j].UV.Y * v.invW
		sv[j] = v
	}

	area := edgeFn(sv[0], sv[1], sv[2])
	if area == 0 {
		return
	}
	if area < 0 {
		if !r.DisableBackfaceCulling {
			return
		}
		sv[1], sv[2] = sv[2], sv[1]
		area = -area
	}

	minX := int(math.Floor(min3(sv[0].x, sv[1].x, sv[2].x)))
	maxX := int(math.Ceil(max3(sv[0].x, sv[1].x, sv[2].x)))
	minY := int(math.Floor(min3(sv[0].y, sv[1].y, sv[2].y)))
	maxY := int(math.Ceil(max3(sv[0].y, sv[1].y, sv[2].y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= r.fb.Width {
		maxX = r.fb.Width - 1
	}
	if maxY >= r.fb.Height {
		maxY = r.fb.Height - 1
	}

	base := tri.V[0].Color
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := screenVertex{x: float64(x) + 0.5, y: float64(y) + 0.5}
			w0 := edgeFn(sv[1], sv[2], p)
			w1 := edgeFn(sv[2], sv[0], p)
			w2 := edgeFn(sv[0], sv[1], p)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			w0 /= area
			w1 /= area
			w2 /= area

			z := w0*sv[0].z + w1*sv[1].z + w2*sv[2].z
			di := y*r.fb.Width + x
			if z >= r.depth[di] {
				continue
			}
			r.depth[di] = z

			lit := w0*sv[0].lit + w1*sv[1].lit + w2*sv[2].lit
			c := base
			if tex != nil {
				invW := w0*sv[0].invW + w1*sv[1].invW + w2*sv[2].invW
				u := (w0*sv[0].uOW + w1*sv[1].uOW + w2*sv[2].uOW) / invW
				v := (w0*sv[0].vOW + w1*sv[1].vOW + w2*sv[2].vOW) / invW
				c = tex.Sample(u, v)
			}
			r.fb.Pixels[di] = MultiplyColor(c, lit)
		}
	}
}

// drawLine draws a single pixel-wide line using DDA.
func (r *Rasterizer) drawLine(a, b screenVertex, color Color) {
	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		r.fb.SetPixel(int(a.x), int(a.y), color)
		return
	}
	sx := dx / float64(steps)
	sy := dy / float64(steps)
	x, y := a.x, a.y
	for i := 0; i <= steps; i++ {
		r.fb.SetPixel(int(x), int(y), color)
		x += sx
		y += sy
	}
}

// edgeFn returns twice the signed area of triangle (a, b, c), oriented so
// that world counter-clockwise faces are positive after the screen-space
// y flip.
func edgeFn(a, b, c screenVertex) float64 {
	return (b.y-a.y)*(c.x-a.x) - (b.x-a.x)*(c.y-a.y)
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
