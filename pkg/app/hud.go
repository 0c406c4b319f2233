package app

import (
	"fmt"
	"time"

	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"
)

// HUD is the info overlay: FPS, era, polygon count, and the era period
// footer. Toggleable with '?'.
type HUD struct {
	Visible bool

	viewer    *Viewer
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD over the given viewer, visible by default.
func NewHUD(v *Viewer) *HUD {
	return &HUD{
		Visible: true,
		viewer:  v,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter; call once per frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Footer is the era period line shown at the bottom of either frontend,
// e.g. "Modern Earth (present day)".
func (h *HUD) Footer() string {
	for _, e := range h.viewer.EraInfo() {
		if e.Key == h.viewer.Era() {
			return fmt.Sprintf("%s (%s)", e.Label, e.Period)
		}
	}
	return h.viewer.EraLabel()
}

// Lines returns the overlay text for the window frontend.
func (h *HUD) Lines() string {
	if !h.Visible {
		return ""
	}
	checkTex := "[ ]"
	if h.viewer.TextureOn && !h.viewer.Wireframe {
		checkTex = "[x]"
	}
	checkWire := "[ ]"
	if h.viewer.Wireframe {
		checkWire = "[x]"
	}
	return fmt.Sprintf("%.0f FPS  %d polys\n%s\n%s Texture  %s Wireframe\n1-5 era  +/- zoom  r recenter  t texture  x wireframe",
		h.fps, h.viewer.Mesh().TriangleCount(), h.Footer(), checkTex, checkWire)
}

// Draw renders the overlay on the terminal frontend.
func (h *HUD) Draw(ap *ansipixels.AnsiPixels) {
	if !h.Visible {
		// The era footer stays, HUD or not.
		ap.WriteCentered(ap.H-1, "%s", h.Footer())
		return
	}

	ap.WriteAt(0, 0, tcolor.Green.Foreground()+"%.0f FPS "+tcolor.Reset, h.fps)
	ap.WriteCentered(0, "%s", h.viewer.EraLabel())
	ap.WriteRight(0, tcolor.Cyan.Foreground()+"%d polys"+tcolor.Reset, h.viewer.Mesh().TriangleCount())

	checkTex := "[ ]"
	if h.viewer.TextureOn && !h.viewer.Wireframe {
		checkTex = "[✓]"
	}
	checkWire := "[ ]"
	if h.viewer.Wireframe {
		checkWire = "[✓]"
	}
	ap.WriteAt(0, ap.H-2, "%s Texture  %s X-Ray (wireframe)", checkTex, checkWire)
	ap.WriteRight(ap.H-2, "%s1-5: era  +/-: zoom  r: recenter%s", tcolor.Yellow.Foreground(), tcolor.Reset)
	ap.WriteCentered(ap.H-1, "%s", h.Footer())
}
