package render

import (
	"math"

	"github.com/chronoglobe/globe/pkg/math3d"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	fov    float64
	aspect float64
	near   float64
	far    float64
}

// NewCamera creates a camera at the origin with a 60 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Up:     math3d.V3(0, 1, 0),
		fov:    math.Pi / 3,
		aspect: 1.0,
		near:   0.1,
		far:    100,
	}
}

// SetAspectRatio sets the projection aspect ratio (width / height).
func (c *Camera) SetAspectRatio(aspect float64) {
	c.aspect = aspect
}

// AspectRatio returns the current projection aspect ratio.
func (c *Camera) AspectRatio() float64 {
	return c.aspect
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.near = near
	c.far = far
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(p math3d.Vec3) {
	c.Position = p
}

// LookAt points the camera at a target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.fov, c.aspect, c.near, c.far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
