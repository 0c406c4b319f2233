package orbit

// Zoom bounds and step. Each zoom action moves the camera distance by
// exactly ZoomStep and saturates silently at the bounds.
const (
	MinDistance = 0.5
	MaxDistance = 3.0
	ZoomStep    = 0.3

	// DefaultDistance is the camera distance at startup.
	DefaultDistance = 1.8
)

// Zoom is the camera distance-from-target scalar.
type Zoom struct {
	distance float64
}

// NewZoom creates a Zoom at the default distance.
func NewZoom() *Zoom {
	return &Zoom{distance: DefaultDistance}
}

// In moves one step closer, clamped to MinDistance.
func (z *Zoom) In() {
	z.distance -= ZoomStep
	if z.distance < MinDistance {
		z.distance = MinDistance
	}
}

// Out moves one step away, clamped to MaxDistance.
func (z *Zoom) Out() {
	z.distance += ZoomStep
	if z.distance > MaxDistance {
		z.distance = MaxDistance
	}
}

// Distance returns the current camera distance.
func (z *Zoom) Distance() float64 {
	return z.distance
}
