// Package app ties the globe scene to a frontend: the terminal viewer
// (ansipixels) or the desktop window viewer (ebiten). Both share the
// same per-frame pipeline in Viewer.
package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronoglobe/globe/pkg/render"
)

// Config carries everything the viewer needs, filled from CLI flags.
type Config struct {
	// ModelPath optionally replaces the generated sphere with a GLB
	// globe shell. Empty means the built-in sphere.
	ModelPath string

	// Era is the starting era key.
	Era string

	// FPS is the frame loop target rate.
	FPS int

	// Window selects the desktop window frontend instead of the
	// terminal.
	Window bool

	// TextureOverrides rebinds era keys to custom locators
	// (file path, http(s) URL, or res: name).
	TextureOverrides map[string]string

	// TelemetryAddr, when set, starts the WebSocket telemetry server
	// on that host:port.
	TelemetryAddr string

	// IMUPort, when set, drives the orientation from quaternion lines
	// read off this serial port at Baud.
	IMUPort string
	Baud    int

	// Background is an "R,G,B" triple; empty keeps the frontend
	// default.
	Background string
}

// ParseBackground parses an "R,G,B" triple into a render color.
func ParseBackground(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("background %q: want R,G,B", s)
	}
	var vals [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return render.Color{}, fmt.Errorf("background %q: component %d out of range", s, i)
		}
		vals[i] = uint8(n)
	}
	return render.RGB(vals[0], vals[1], vals[2]), nil
}
