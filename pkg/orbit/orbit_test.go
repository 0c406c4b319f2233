package orbit

import (
	"math"
	"testing"
)

func TestDragMomentumClamped(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)

	// Wild drag sequence: momentum must stay bounded after every move.
	moves := [][2]float64{
		{100, 0}, {-300, 250}, {5000, -5000}, {0.5, 0.1}, {-2, 40},
	}
	x, y := 0.0, 0.0
	for _, mv := range moves {
		x += mv[0]
		y += mv[1]
		c.DragMove(x, y)
		mx, my := c.Momentum()
		if math.Abs(mx) > MaxMomentum || math.Abs(my) > MaxMomentum {
			t.Fatalf("momentum (%v, %v) exceeds %v after move %v", mx, my, MaxMomentum, mv)
		}
	}
}

func TestDragMomentumFromDelta(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)
	c.DragMove(100, 0)

	// delta.x = 100 * sensitivity 0.009 = 0.9, clamped to 0.15.
	mx, my := c.Momentum()
	if mx != MaxMomentum {
		t.Errorf("momentumX = %v, want %v", mx, MaxMomentum)
	}
	if my != 0 {
		t.Errorf("momentumY = %v, want 0", my)
	}
}

func TestDragMoveAppliesRotationImmediately(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)
	c.DragMove(10, 4)

	pitch, yaw := c.Rotation()
	if want := 10 * Sensitivity; math.Abs(yaw-want) > 1e-12 {
		t.Errorf("yaw = %v, want %v", yaw, want)
	}
	if want := 4 * Sensitivity; math.Abs(pitch-want) > 1e-12 {
		t.Errorf("pitch = %v, want %v", pitch, want)
	}
}

func TestDragMoveIgnoredWhenNotDragging(t *testing.T) {
	c := NewController(60)
	c.DragMove(500, 500)

	pitch, yaw := c.Rotation()
	mx, my := c.Momentum()
	if pitch != 0 || yaw != 0 || mx != 0 || my != 0 {
		t.Error("DragMove without DragStart mutated state")
	}
}

func TestStepNoOpWhileDragging(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)
	c.DragMove(10, 10)

	pitch, yaw := c.Rotation()
	mx, my := c.Momentum()
	c.Step()
	pitch2, yaw2 := c.Rotation()
	mx2, my2 := c.Momentum()

	if pitch != pitch2 || yaw != yaw2 || mx != mx2 || my != my2 {
		t.Error("Step mutated state during an active drag")
	}
}

func TestDragEndPreservesMomentum(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)
	c.DragMove(100, 0)
	mx, my := c.Momentum()

	c.DragEnd()
	mx2, my2 := c.Momentum()
	if mx != mx2 || my != my2 {
		t.Errorf("momentum changed on release: (%v, %v) -> (%v, %v)", mx, my, mx2, my2)
	}
	if c.Dragging() {
		t.Error("still dragging after DragEnd")
	}
}

func TestMomentumDecayReachesAutoRotate(t *testing.T) {
	c := NewController(60)
	c.SetAutoRotation(true)
	c.DragStart(0, 0)
	c.DragMove(100, 0) // momentumX = 0.15
	c.DragEnd()

	// Three idle frames: 0.15 * 0.01^3 = 1.5e-7 < 0.001.
	for i := 0; i < 3; i++ {
		c.Step()
	}
	mx, _ := c.Momentum()
	if want := MaxMomentum * math.Pow(MomentumDecay, 3); math.Abs(mx-want) > 1e-15 {
		t.Errorf("momentumX after 3 idle frames = %v, want %v", mx, want)
	}
	if mx >= 0.001 {
		t.Fatalf("momentum %v not below idle threshold", mx)
	}

	// The next idle frame adds the constant auto-spin.
	_, yawBefore := c.Rotation()
	c.Step()
	_, yawAfter := c.Rotation()

	got := yawAfter - yawBefore
	want := AutoRotateSpeed + mx // residual momentum still applies first
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("idle frame advanced yaw by %v, want %v", got, want)
	}
}

func TestAutoRotationDisabled(t *testing.T) {
	c := NewController(60)
	c.SetAutoRotation(false)

	_, yawBefore := c.Rotation()
	for i := 0; i < 10; i++ {
		c.Step()
	}
	_, yawAfter := c.Rotation()
	if yawBefore != yawAfter {
		t.Errorf("yaw moved with auto-rotation off: %v -> %v", yawBefore, yawAfter)
	}
}

func TestImpulseClamped(t *testing.T) {
	c := NewController(60)
	c.Impulse(1.0, -1.0)
	mx, my := c.Momentum()
	if mx != MaxMomentum || my != -MaxMomentum {
		t.Errorf("impulse momentum = (%v, %v), want clamped to +/-%v", mx, my, MaxMomentum)
	}
}

func TestRecenterReturnsToZero(t *testing.T) {
	c := NewController(60)
	c.SetAutoRotation(false)
	c.DragStart(0, 0)
	c.DragMove(200, -150)
	c.DragEnd()
	c.Recenter()

	// A critically damped spring settles well within a few seconds of
	// frames.
	for i := 0; i < 600; i++ {
		c.Step()
	}
	pitch, yaw := c.Rotation()
	if pitch != 0 || yaw != 0 {
		t.Errorf("rotation after recenter = (%v, %v), want (0, 0)", pitch, yaw)
	}
}

func TestDragCancelsRecenter(t *testing.T) {
	c := NewController(60)
	c.SetAutoRotation(false)
	c.DragStart(0, 0)
	c.DragMove(200, 0)
	c.DragEnd()
	c.Recenter()
	c.Step()

	// Grabbing the globe mid-flight stops the return animation.
	c.DragStart(0, 0)
	c.DragMove(50, 0)
	c.DragEnd()

	// Step now applies momentum (50 px * 0.009 clamps to 0.15), not the
	// spring.
	_, yawBefore := c.Rotation()
	c.Step()
	_, yawAfter := c.Rotation()
	if math.Abs((yawAfter-yawBefore)-MaxMomentum) > 1e-12 {
		t.Errorf("step after cancelled recenter advanced yaw by %v, want %v", yawAfter-yawBefore, MaxMomentum)
	}
}

func TestSetRotationIgnoredWhileDragging(t *testing.T) {
	c := NewController(60)
	c.DragStart(0, 0)
	c.DragMove(10, 10)
	pitch, yaw := c.Rotation()

	c.SetRotation(5, 5)
	pitch2, yaw2 := c.Rotation()
	if pitch != pitch2 || yaw != yaw2 {
		t.Error("SetRotation overrode an active drag")
	}

	c.DragEnd()
	c.SetRotation(1, 2)
	pitch3, yaw3 := c.Rotation()
	if pitch3 != 1 || yaw3 != 2 {
		t.Errorf("SetRotation = (%v, %v), want (1, 2)", pitch3, yaw3)
	}
}
