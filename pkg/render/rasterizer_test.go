package render

import (
	"math"
	"testing"

	"github.com/chronoglobe/globe/pkg/math3d"
)

// triMesh is a minimal MeshRenderer holding one triangle.
type triMesh struct {
	pos [3]math3d.Vec3
	uv  [3]math3d.Vec2
}

func (m *triMesh) GetVertex(i int) (math3d.Vec3, math3d.Vec3, math3d.Vec2) {
	// All normals face the camera at +Z.
	return m.pos[i], math3d.V3(0, 0, 1), m.uv[i]
}

func (m *triMesh) GetFace(int) [3]int { return [3]int{0, 1, 2} }
func (m *triMesh) FaceCount() int     { return 1 }

func testCameraFB(size int) (*Camera, *Framebuffer) {
	cam := NewCamera()
	cam.SetAspectRatio(1.0)
	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, 3))
	cam.LookAt(math3d.V3(0, 0, 0))
	return cam, NewFramebuffer(size, size)
}

// frontTri returns a triangle wound counter-clockwise as seen from +Z,
// the front-facing convention used by the sphere generator.
func frontTri() *triMesh {
	return &triMesh{
		pos: [3]math3d.Vec3{
			math3d.V3(-1, -1, 0),
			math3d.V3(1, -1, 0),
			math3d.V3(0, 1, 0),
		},
		uv: [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0.5, 1)},
	}
}

func TestDrawMeshGouraudCoversCenter(t *testing.T) {
	cam, fb := testCameraFB(64)
	r := NewRasterizer(cam, fb)
	fb.Clear()
	r.ClearDepth()

	r.DrawMeshGouraud(frontTri(), math3d.Identity(), RGB(200, 200, 200), math3d.V3(0, 0, 1))

	if got := fb.GetPixel(32, 32); got == (Color{}) {
		t.Error("center pixel not drawn for front-facing triangle")
	}
}

func TestBackfaceCulled(t *testing.T) {
	cam, fb := testCameraFB(64)
	r := NewRasterizer(cam, fb)
	fb.Clear()
	r.ClearDepth()

	// Reverse winding: back face, should be culled.
	m := frontTri()
	m.pos[1], m.pos[2] = m.pos[2], m.pos[1]
	r.DrawMeshGouraud(m, math3d.Identity(), RGB(200, 200, 200), math3d.V3(0, 0, 1))

	if got := fb.GetPixel(32, 32); got != (Color{}) {
		t.Errorf("center pixel = %v, want untouched for back-facing triangle", got)
	}

	// With culling disabled it draws.
	r.DisableBackfaceCulling = true
	r.DrawMeshGouraud(m, math3d.Identity(), RGB(200, 200, 200), math3d.V3(0, 0, 1))
	if got := fb.GetPixel(32, 32); got == (Color{}) {
		t.Error("center pixel not drawn with culling disabled")
	}
}

func TestDepthTestKeepsNearer(t *testing.T) {
	cam, fb := testCameraFB(64)
	r := NewRasterizer(cam, fb)
	fb.Clear()
	r.ClearDepth()

	near := frontTri()
	far := frontTri()
	for i := range far.pos {
		far.pos[i].Z = -1
	}

	r.DrawMeshGouraud(far, math3d.Identity(), RGB(10, 10, 10), math3d.V3(0, 0, 1))
	r.DrawMeshGouraud(near, math3d.Identity(), RGB(250, 250, 250), math3d.V3(0, 0, 1))
	bright := fb.GetPixel(32, 32)

	fb.Clear()
	r.ClearDepth()
	// Reverse draw order: result must match, the near surface wins.
	r.DrawMeshGouraud(near, math3d.Identity(), RGB(250, 250, 250), math3d.V3(0, 0, 1))
	r.DrawMeshGouraud(far, math3d.Identity(), RGB(10, 10, 10), math3d.V3(0, 0, 1))

	if got := fb.GetPixel(32, 32); got != bright {
		t.Errorf("depth test order-dependent: %v vs %v", got, bright)
	}
}

func TestTexturedSampling(t *testing.T) {
	cam, fb := testCameraFB(64)
	r := NewRasterizer(cam, fb)
	r.Ambient = 1 // disable shading so texel colors pass through
	fb.Clear()
	r.ClearDepth()

	tex := NewFlatTexture(RGB(0, 200, 0))
	r.DrawMeshTextured(frontTri(), math3d.Identity(), tex, math3d.V3(0, 0, 1))

	if got := fb.GetPixel(32, 32); got != RGB(0, 200, 0) {
		t.Errorf("textured center pixel = %v, want flat texture color", got)
	}
}

func TestWireframeDrawsEdgesOnly(t *testing.T) {
	cam, fb := testCameraFB(64)
	r := NewRasterizer(cam, fb)
	fb.Clear()
	r.ClearDepth()

	r.DrawMeshWireframe(frontTri(), math3d.Identity(), RGB(0, 255, 128))

	// Bottom edge runs through y just above the lower vertices; the exact
	// row depends on projection, so scan for any lit pixel.
	found := false
	for _, p := range fb.Pixels {
		if p != (Color{}) {
			found = true
			break
		}
	}
	if !found {
		t.Error("wireframe drew nothing")
	}

	// The interior center stays empty: wireframe does not fill.
	if got := fb.GetPixel(32, 30); got != (Color{}) {
		t.Errorf("interior pixel = %v, want unfilled", got)
	}
}
