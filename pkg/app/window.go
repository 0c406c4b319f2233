package app

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/chronoglobe/globe/pkg/render"
)

const (
	windowTitle = "chronoglobe"

	toastSeconds = 1.5
)

// eraKeys maps the 1-5 row to catalog positions.
var eraKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// game adapts the viewer to the ebiten Update/Draw/Layout loop.
type game struct {
	v   *Viewer
	hud *HUD
	ctx context.Context

	mouseDown   bool
	touchID     ebiten.TouchID
	touchActive bool
	touchIDs    []ebiten.TouchID

	frame *ebiten.Image

	toast      string
	toastFade  *gween.Tween
	toastImage *ebiten.Image
}

// RunWindow drives the viewer in a desktop window via ebiten. Returns a
// process exit code.
func RunWindow(ctx context.Context, v *Viewer, cfg Config) int {
	if cfg.Background != "" {
		bg, err := ParseBackground(cfg.Background)
		if err != nil {
			return log.FErrf("%v", err)
		}
		v.SetBackground(bg)
	} else {
		v.SetBackground(render.RGB(12, 12, 24))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if feed := v.IMUFeed(); feed != nil {
		go feed.Run(ctx)
	}
	defer v.Close()

	g := &game{v: v, hud: NewHUD(v), ctx: ctx}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(500, 500)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		hud := NewHUD(v)
		fmt.Println(hud.Footer())
		return log.FErrf("open window: %v (update your graphics drivers, or drop --window for the terminal viewer)", err)
	}
	return 0
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.handleKeys()
	g.handlePointer()

	if applied, err := g.v.Tick(); applied != "" {
		label := g.v.EraLabel()
		if err != nil {
			label += " (texture failed)"
		}
		g.showToast(label)
	}
	if g.toastFade != nil {
		tps := ebiten.TPS()
		if tps <= 0 {
			tps = 60
		}
		if _, done := g.toastFade.Update(1 / float32(tps)); done {
			g.toastFade = nil
			g.toastImage = nil
		}
	}

	g.hud.UpdateFPS()
	g.v.Publish()
	return nil
}

func (g *game) handleKeys() {
	for i, key := range eraKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.v.SelectEraIndex(i)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.v.Zoom.In()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.v.Zoom.Out()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.v.Controller.Impulse(-spinImpulse, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.v.Controller.Impulse(spinImpulse, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.v.Controller.Impulse(0, -spinImpulse)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.v.Controller.Impulse(0, spinImpulse)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.v.Controller.Recenter()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.v.TextureOn = !g.v.TextureOn
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.v.Wireframe = !g.v.Wireframe
	case inpututil.IsKeyJustPressed(ebiten.KeySlash):
		g.hud.Visible = !g.hud.Visible
	}
}

// handlePointer maps mouse and single-touch input onto the drag
// controller. Touch takes over when present; extra fingers are ignored.
func (g *game) handlePointer() {
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if wheelY > 0 {
			g.v.Zoom.In()
		} else {
			g.v.Zoom.Out()
		}
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if g.touchActive {
		alive := false
		for _, id := range g.touchIDs {
			if id == g.touchID {
				alive = true
				break
			}
		}
		if !alive {
			g.touchActive = false
			g.v.Controller.DragEnd()
		} else {
			x, y := ebiten.TouchPosition(g.touchID)
			g.v.Controller.DragMove(float64(x), float64(y))
			return
		}
	}
	if !g.touchActive && len(g.touchIDs) > 0 {
		g.touchID = g.touchIDs[0]
		g.touchActive = true
		x, y := ebiten.TouchPosition(g.touchID)
		g.v.Controller.DragStart(float64(x), float64(y))
		return
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	x, y := ebiten.CursorPosition()
	switch {
	case pressed && !g.mouseDown:
		g.mouseDown = true
		g.v.Controller.DragStart(float64(x), float64(y))
	case pressed && g.mouseDown:
		g.v.Controller.DragMove(float64(x), float64(y))
	case !pressed && g.mouseDown:
		g.mouseDown = false
		g.v.Controller.DragEnd()
	}
}

func (g *game) showToast(label string) {
	g.toast = label
	g.toastFade = gween.New(1, 0, toastSeconds, ease.OutQuad)
	g.toastImage = nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.v.Framebuffer()
	g.v.Render()

	img := fb.ToImage()
	if g.frame == nil || g.frame.Bounds().Dx() != fb.Width || g.frame.Bounds().Dy() != fb.Height {
		g.frame = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)

	if g.hud.Visible {
		ebitenutil.DebugPrint(screen, g.hud.Lines())
	} else {
		ebitenutil.DebugPrintAt(screen, g.hud.Footer(), 4, fb.Height-16)
	}

	if g.toastFade != nil {
		alpha, _ := g.toastFade.Update(0)
		if g.toastImage == nil {
			g.toastImage = ebiten.NewImage(fb.Width, 20)
			ebitenutil.DebugPrintAt(g.toastImage, g.toast, fb.Width/2-len(g.toast)*3, 2)
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(0, float64(fb.Height)/2)
		opts.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(g.toastImage, opts)
	}
}

// Layout keeps the render target square per the viewport rule.
func (g *game) Layout(outsideWidth, _ int) (int, int) {
	size := g.v.Resize(outsideWidth)
	return size, size
}
