// Package orbit holds the interaction state of the globe: drag-driven
// rotation with inertia, discrete zoom, and viewport sizing.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Tuning constants for the drag/momentum model.
const (
	// Sensitivity converts pointer delta pixels to radians of momentum.
	Sensitivity = 0.009
	// MaxMomentum bounds per-frame angular velocity on each axis.
	MaxMomentum = 0.15
	// MomentumDecay is the per-frame multiplicative decay applied while
	// no drag is active. It is aggressive: momentum reaches ~1% of its
	// value every frame, so inertia dies within a few frames.
	MomentumDecay = 0.01
	// AutoRotateSpeed is the idle spin added to yaw once momentum has
	// decayed below the idle threshold.
	AutoRotateSpeed = 0.009

	// idleThreshold is the momentum magnitude below which the globe is
	// considered at rest and auto-rotation takes over.
	idleThreshold = 0.001

	// recenterDone is the settle tolerance for the recenter spring.
	recenterDone = 1e-4
)

// Controller owns the orientation state of the globe. It is not
// goroutine safe: all calls must come from the frame loop goroutine,
// which matches how the frontends dispatch input.
type Controller struct {
	rotationX float64 // pitch, radians, unbounded
	rotationY float64 // yaw, radians, unbounded

	momentumX float64 // yaw velocity per frame, |m| <= MaxMomentum
	momentumY float64 // pitch velocity per frame, |m| <= MaxMomentum

	dragging     bool
	lastX, lastY float64

	// Recenter spring state. While active, Step animates rotation back
	// to zero instead of applying momentum. Any drag cancels it.
	recentering  bool
	spring       harmonica.Spring
	velX, velY   float64
	autoRotation bool
}

// NewController creates a controller at rest with auto-rotation enabled.
// fps is the frame loop rate, used to tune the recenter spring.
func NewController(fps int) *Controller {
	if fps <= 0 {
		fps = 60
	}
	return &Controller{
		// Critically damped: recenter glides to zero without overshoot.
		spring:       harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		autoRotation: true,
	}
}

// DragStart begins a drag at the given pointer position.
func (c *Controller) DragStart(x, y float64) {
	c.dragging = true
	c.recentering = false
	c.lastX, c.lastY = x, y
}

// DragMove processes pointer movement during a drag. Rotation is applied
// immediately so dragging tracks the pointer 1:1; Step skips rotation
// while a drag is active to avoid applying it twice. Ignored when no
// drag is in progress.
func (c *Controller) DragMove(x, y float64) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY

	c.momentumX = clamp(dx*Sensitivity, -MaxMomentum, MaxMomentum)
	c.momentumY = clamp(dy*Sensitivity, -MaxMomentum, MaxMomentum)

	c.rotationY += c.momentumX
	c.rotationX += c.momentumY

	c.lastX, c.lastY = x, y
}

// DragEnd releases the drag. Momentum keeps its last value, so the globe
// coasts on as inertia.
func (c *Controller) DragEnd() {
	c.dragging = false
}

// Impulse adds a spin impulse on each axis, clamped like drag momentum.
// Used by keyboard controls.
func (c *Controller) Impulse(yaw, pitch float64) {
	c.momentumX = clamp(c.momentumX+yaw, -MaxMomentum, MaxMomentum)
	c.momentumY = clamp(c.momentumY+pitch, -MaxMomentum, MaxMomentum)
}

// Recenter starts a spring animation returning the orientation to zero.
// Momentum is dropped; a new drag cancels the animation.
func (c *Controller) Recenter() {
	c.recentering = true
	c.momentumX = 0
	c.momentumY = 0
	c.velX = 0
	c.velY = 0
}

// SetRotation overrides the orientation directly, used by external
// orientation sources. Ignored while a drag is active so the pointer
// keeps priority.
func (c *Controller) SetRotation(pitch, yaw float64) {
	if c.dragging {
		return
	}
	c.rotationX = pitch
	c.rotationY = yaw
	c.momentumX = 0
	c.momentumY = 0
}

// SetAutoRotation toggles the idle auto-spin.
func (c *Controller) SetAutoRotation(on bool) {
	c.autoRotation = on
}

// Step advances the orientation by one frame. While a drag is active it
// does nothing: DragMove has already applied the rotation. Otherwise it
// applies momentum, decays it, and falls back to the idle auto-spin once
// momentum is negligible.
func (c *Controller) Step() {
	if c.dragging {
		return
	}

	if c.recentering {
		c.rotationX, c.velX = c.spring.Update(c.rotationX, c.velX, 0)
		c.rotationY, c.velY = c.spring.Update(c.rotationY, c.velY, 0)
		if math.Abs(c.rotationX) < recenterDone && math.Abs(c.velX) < recenterDone &&
			math.Abs(c.rotationY) < recenterDone && math.Abs(c.velY) < recenterDone {
			c.rotationX = 0
			c.rotationY = 0
			c.recentering = false
		}
		return
	}

	c.rotationY += c.momentumX
	c.rotationX += c.momentumY

	c.momentumX *= MomentumDecay
	c.momentumY *= MomentumDecay

	if c.autoRotation &&
		math.Abs(c.momentumX) < idleThreshold && math.Abs(c.momentumY) < idleThreshold {
		c.rotationY += AutoRotateSpeed
	}
}

// Rotation returns the current pitch and yaw in radians.
func (c *Controller) Rotation() (pitch, yaw float64) {
	return c.rotationX, c.rotationY
}

// Momentum returns the current per-frame angular velocity.
func (c *Controller) Momentum() (x, y float64) {
	return c.momentumX, c.momentumY
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
