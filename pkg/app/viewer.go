package app

import (
	"fmt"
	"math"
	"time"

	"fortio.org/log"

	"github.com/chronoglobe/globe/pkg/eras"
	"github.com/chronoglobe/globe/pkg/imu"
	"github.com/chronoglobe/globe/pkg/math3d"
	"github.com/chronoglobe/globe/pkg/models"
	"github.com/chronoglobe/globe/pkg/orbit"
	"github.com/chronoglobe/globe/pkg/render"
	"github.com/chronoglobe/globe/pkg/telemetry"
)

const (
	// sphereRadius keeps the camera outside the globe across the whole
	// zoom range [0.5, 3.0].
	sphereRadius = 0.4

	sphereSegments = 48
	sphereRings    = 24

	fetchTimeout = 15 * time.Second
)

// Viewer is the frontend-independent globe scene: mesh, era material,
// orientation, zoom, and the rasterizer pipeline. Frontends feed it
// input events and call Tick + Render once per frame.
type Viewer struct {
	Controller *orbit.Controller
	Zoom       *orbit.Zoom

	catalog  *eras.Catalog
	loader   *eras.Loader
	material *eras.Material
	era      string

	mesh       *models.Mesh
	camera     *render.Camera
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	lightDir   math3d.Vec3

	// Render toggles.
	TextureOn bool
	Wireframe bool

	telemetry *telemetry.Server
	imuFeed   *imu.Feed
}

// NewViewer builds the scene from the config. The frontend still has to
// call Resize before the first frame to size the framebuffer.
func NewViewer(cfg Config) (*Viewer, error) {
	v := &Viewer{
		Controller: orbit.NewController(cfg.FPS),
		Zoom:       orbit.NewZoom(),
		catalog:    eras.NewCatalog(),
		loader:     eras.NewLoader(fetchTimeout),
		material:   eras.NewMaterial(),
		camera:     render.NewCamera(),
		lightDir:   math3d.V3(0.5, 1, 0.3).Normalize(),
		TextureOn:  true,
	}

	for era, locator := range cfg.TextureOverrides {
		if err := v.catalog.Override(era, locator); err != nil {
			return nil, err
		}
	}

	if cfg.ModelPath != "" {
		mesh, img, err := models.LoadGLB(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh.Normalize(2 * sphereRadius)
		v.mesh = mesh
		if img != nil {
			log.Infof("model texture: %dx%d (replaced per era)", img.Bounds().Dx(), img.Bounds().Dy())
		}
	} else {
		v.mesh = models.NewSphere(sphereRadius, sphereSegments, sphereRings)
	}

	v.camera.SetFOV(math.Pi / 3)
	v.camera.SetClipPlanes(0.05, 100)
	v.camera.SetAspectRatio(1.0)
	v.camera.LookAt(math3d.V3(0, 0, 0))

	// Initial framebuffer; Resize replaces it with the real viewport.
	v.fb = render.NewFramebuffer(orbit.MaxViewportSize, orbit.MaxViewportSize)
	v.rasterizer = render.NewRasterizer(v.camera, v.fb)

	if cfg.TelemetryAddr != "" {
		v.telemetry = telemetry.NewServer(cfg.TelemetryAddr)
		v.telemetry.Start()
	}
	if cfg.IMUPort != "" {
		v.imuFeed = imu.NewFeed(cfg.IMUPort, cfg.Baud)
	}

	era := cfg.Era
	if era == "" {
		era = eras.DefaultEra
	}
	if err := v.SelectEra(era); err != nil {
		return nil, err
	}
	return v, nil
}

// IMUFeed returns the serial orientation feed, or nil when not
// configured. The frontend starts its Run loop on its own context.
func (v *Viewer) IMUFeed() *imu.Feed {
	return v.imuFeed
}

// Framebuffer exposes the current render target for presentation.
func (v *Viewer) Framebuffer() *render.Framebuffer {
	return v.fb
}

// Mesh returns the globe geometry.
func (v *Viewer) Mesh() *models.Mesh {
	return v.mesh
}

// Era returns the current era key.
func (v *Viewer) Era() string {
	return v.era
}

// EraLabel returns the display name of the current era.
func (v *Viewer) EraLabel() string {
	return v.catalog.Label(v.era)
}

// EraInfo returns the catalog entries in presentation order.
func (v *Viewer) EraInfo() []eras.Info {
	return v.catalog.Entries()
}

// SelectEra switches the globe surface to the given era: placeholder
// color now, real texture when the async fetch lands. Unknown keys are
// rejected and leave the current era untouched.
func (v *Viewer) SelectEra(key string) error {
	locator, err := v.catalog.Resolve(key)
	if err != nil {
		return err
	}
	v.era = key
	v.loader.Load(key, locator, v.material)
	return nil
}

// SelectEraIndex switches by position in the catalog (key 1..n on the
// keyboard). Out-of-range indexes are ignored.
func (v *Viewer) SelectEraIndex(i int) {
	entries := v.catalog.Entries()
	if i < 0 || i >= len(entries) {
		return
	}
	if err := v.SelectEra(entries[i].Key); err != nil {
		log.Errf("select era: %v", err)
	}
}

// SetBackground sets the clear color behind the globe.
func (v *Viewer) SetBackground(c render.Color) {
	v.fb.BG.R, v.fb.BG.G, v.fb.BG.B, v.fb.BG.A = c.R, c.G, c.B, 255
}

// Resize recomputes the square viewport from the outer width and
// reallocates the render target. Aspect stays pinned to 1.
func (v *Viewer) Resize(outerWidth int) int {
	size := orbit.ViewportSize(outerWidth)
	if size != v.fb.Width || size != v.fb.Height {
		v.fb.Resize(size, size)
		v.rasterizer.SetFramebuffer(v.fb)
	}
	v.camera.SetAspectRatio(1.0)
	return size
}

// Tick advances the scene one frame: installs any finished texture
// fetch, applies a pending hardware orientation sample, steps the
// momentum engine, and positions the camera at the zoom distance.
// It returns the era whose fetch resolved this frame ("" when none)
// and the fetch error when the surface fell back to the flat color.
func (v *Viewer) Tick() (string, error) {
	applied, err := v.loader.Apply(v.material)

	if v.imuFeed != nil {
		select {
		case s := <-v.imuFeed.Samples():
			v.Controller.SetRotation(s.Pitch, s.Yaw)
		default:
		}
	}

	v.Controller.Step()
	v.camera.SetPosition(math3d.V3(0, 0, v.Zoom.Distance()))
	v.camera.LookAt(math3d.V3(0, 0, 0))
	return applied, err
}

// Render draws the globe into the framebuffer with the current
// orientation and surface state.
func (v *Viewer) Render() {
	pitch, yaw := v.Controller.Rotation()
	transform := math3d.RotateX(pitch).Mul(math3d.RotateY(yaw))

	v.fb.Clear()
	v.rasterizer.ClearDepth()

	switch {
	case v.Wireframe:
		v.rasterizer.DrawMeshWireframe(v.mesh, transform, render.RGB(0, 255, 128))
	case v.TextureOn && v.material.Texture() != nil:
		v.rasterizer.DrawMeshTextured(v.mesh, transform, v.material.Texture(), v.lightDir)
	default:
		v.rasterizer.DrawMeshGouraud(v.mesh, transform, v.material.Color(), v.lightDir)
	}
}

// Publish broadcasts the frame's view state to telemetry clients, if a
// telemetry server is running.
func (v *Viewer) Publish() {
	if v.telemetry == nil {
		return
	}
	pitch, yaw := v.Controller.Rotation()
	mx, my := v.Controller.Momentum()
	v.telemetry.Broadcast(telemetry.Sample{
		Era:       v.era,
		RotationX: pitch,
		RotationY: yaw,
		MomentumX: mx,
		MomentumY: my,
		Distance:  v.Zoom.Distance(),
		Dragging:  v.Controller.Dragging(),
	})
}

// Close shuts down background services.
func (v *Viewer) Close() {
	if v.telemetry != nil {
		v.telemetry.Close()
	}
}
