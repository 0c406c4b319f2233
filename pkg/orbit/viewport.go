package orbit

// MaxViewportSize caps the square render target edge in pixels.
const MaxViewportSize = 400

// ViewportSize computes the square render target edge for a given outer
// width: 80% of the available width, capped at MaxViewportSize. The
// camera aspect ratio for this viewport is always exactly 1.0.
func ViewportSize(outerWidth int) int {
	size := outerWidth * 8 / 10
	if size > MaxViewportSize {
		size = MaxViewportSize
	}
	if size < 1 {
		size = 1
	}
	return size
}
