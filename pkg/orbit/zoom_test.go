package orbit

import (
	"math"
	"testing"
)

func TestZoomDefault(t *testing.T) {
	z := NewZoom()
	if z.Distance() != DefaultDistance {
		t.Errorf("Distance = %v, want %v", z.Distance(), DefaultDistance)
	}
}

func TestZoomOutSaturates(t *testing.T) {
	z := NewZoom()
	for i := 0; i < 20; i++ {
		z.Out()
		if d := z.Distance(); d > MaxDistance {
			t.Fatalf("distance %v exceeded max after %d steps", d, i+1)
		}
	}
	if z.Distance() != MaxDistance {
		t.Errorf("Distance after 20 Out = %v, want exactly %v", z.Distance(), MaxDistance)
	}
	// Stays pinned.
	z.Out()
	if z.Distance() != MaxDistance {
		t.Errorf("Distance moved past max: %v", z.Distance())
	}
}

func TestZoomInSaturates(t *testing.T) {
	z := NewZoom()
	for i := 0; i < 20; i++ {
		z.In()
		if d := z.Distance(); d < MinDistance {
			t.Fatalf("distance %v under min after %d steps", d, i+1)
		}
	}
	if z.Distance() != MinDistance {
		t.Errorf("Distance after 20 In = %v, want exactly %v", z.Distance(), MinDistance)
	}
}

func TestZoomStepSize(t *testing.T) {
	z := NewZoom()
	before := z.Distance()
	z.Out()
	if got := z.Distance() - before; math.Abs(got-ZoomStep) > 1e-12 {
		t.Errorf("Out moved %v, want %v", got, ZoomStep)
	}
	z.In()
	if got := z.Distance(); math.Abs(got-before) > 1e-12 {
		t.Errorf("In did not undo Out: %v vs %v", got, before)
	}
}

func TestZoomInterleaved(t *testing.T) {
	z := NewZoom()
	// Any interleaving keeps distance within bounds.
	ops := []func(){z.In, z.Out, z.Out, z.In, z.In, z.In, z.In, z.In, z.Out, z.In}
	for _, op := range ops {
		op()
		if d := z.Distance(); d < MinDistance || d > MaxDistance {
			t.Fatalf("distance %v out of bounds", d)
		}
	}
}
