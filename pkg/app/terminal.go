package app

import (
	"context"
	"fmt"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"

	"github.com/chronoglobe/globe/pkg/render"
)

// RunTerminal drives the viewer in the terminal via ansipixels: mouse
// drag rotates the globe, the wheel zooms, number keys switch eras.
// Returns a process exit code.
func RunTerminal(ctx context.Context, v *Viewer, cfg Config) int {
	ap := ansipixels.NewAnsiPixels(float64(cfg.FPS))
	if err := ap.Open(); err != nil {
		// The globe can't come up, but the era line still tells the
		// user where they are.
		hud := NewHUD(v)
		fmt.Println(hud.Footer())
		return log.FErrf("open terminal: %v (try a different terminal emulator)", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	v.SetBackground(render.RGB(ap.Background.R, ap.Background.G, ap.Background.B))
	if cfg.Background != "" {
		bg, err := ParseBackground(cfg.Background)
		if err != nil {
			return log.FErrf("%v", err)
		}
		v.SetBackground(bg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if feed := v.IMUFeed(); feed != nil {
		go feed.Run(ctx)
	}
	defer v.Close()

	// Square render target sized from the terminal width; ansipixels
	// scales it to fit.
	v.Resize(ap.W)
	hud := NewHUD(v)

	ap.OnMouse = func() {
		switch {
		case ap.MouseWheelUp():
			v.Zoom.In()
		case ap.MouseWheelDown():
			v.Zoom.Out()
		case ap.LeftClick():
			v.Controller.DragStart(float64(ap.Mx), float64(ap.My))
		case ap.LeftDrag():
			if !v.Controller.Dragging() {
				v.Controller.DragStart(float64(ap.Mx), float64(ap.My))
			}
			v.Controller.DragMove(float64(ap.Mx), float64(ap.My))
		case ap.MouseRelease():
			v.Controller.DragEnd()
		}
	}
	ap.OnResize = func() error {
		v.Resize(ap.W)
		return nil
	}

	err := ap.FPSTicks(func() bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		for _, b := range ap.Data {
			if !handleKey(v, hud, b, cancel) {
				return false
			}
		}

		v.Tick()
		v.Render()

		ap.ClearScreen()
		if err := ap.ShowScaledImage(v.Framebuffer().ToImage()); err != nil {
			log.Errf("show image: %v", err)
			return false
		}
		hud.UpdateFPS()
		hud.Draw(ap)
		v.Publish()
		return true
	})
	if err != nil {
		return log.FErrf("main loop: %v", err)
	}
	return 0
}

// spinImpulse is the per-keypress momentum kick for WASD spinning.
const spinImpulse = 0.03

// handleKey applies one key press; false means quit.
func handleKey(v *Viewer, hud *HUD, b byte, cancel context.CancelFunc) bool {
	switch b {
	case '1', '2', '3', '4', '5':
		v.SelectEraIndex(int(b - '1'))
	case '+', '=':
		v.Zoom.In()
	case '-', '_':
		v.Zoom.Out()
	case 'a', 'A':
		v.Controller.Impulse(-spinImpulse, 0)
	case 'd', 'D':
		v.Controller.Impulse(spinImpulse, 0)
	case 'w', 'W':
		v.Controller.Impulse(0, -spinImpulse)
	case 's', 'S':
		v.Controller.Impulse(0, spinImpulse)
	case 'r', 'R':
		v.Controller.Recenter()
	case 't', 'T':
		v.TextureOn = !v.TextureOn
	case 'x', 'X':
		v.Wireframe = !v.Wireframe
	case '?':
		hud.Visible = !hud.Visible
	case 'q', 'Q', 27: // Esc
		cancel()
		return false
	case 3, 4: // Ctrl-C, Ctrl-D
		cancel()
		return false
	}
	return true
}
