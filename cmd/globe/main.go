// globe - interactive era-textured 3D Earth viewer
// Spin a textured globe in your terminal or in a window, and travel
// through Earth's history with era-switching surface textures.
//
// Controls:
//
//	Mouse drag  - Rotate globe (keeps spinning with inertia)
//	Touch drag  - Same, window frontend
//	Scroll      - Zoom in/out
//	1-5         - Select era (modern .. formation)
//	W/S/A/D     - Spin impulses (pitch and yaw)
//	+/-         - Zoom in/out
//	R           - Recenter the globe
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode
//	?           - Toggle HUD overlay
//	Esc/Q       - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/chronoglobe/globe/pkg/app"
	"github.com/chronoglobe/globe/pkg/eras"
)

var cfg = app.Config{TextureOverrides: map[string]string{}}

var textureFlags []string

func main() {
	cmd := &cobra.Command{
		Use:   "globe [model.glb]",
		Short: "Interactive era-textured 3D Earth viewer",
		Long: `globe - interactive era-textured 3D Earth viewer

Spin a textured globe in your terminal (or a window with --window) and
switch between surface textures for five eras of Earth's history.

Controls:
  Mouse drag  - Rotate globe (inertia on release)
  Scroll      - Zoom in/out
  1-5         - Select era
  W/S/A/D     - Spin impulses
  +/-         - Zoom in/out
  R           - Recenter
  T           - Toggle texture
  X           - Toggle wireframe
  ?           - Toggle HUD overlay
  Esc/Q       - Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.ModelPath = args[0]
			}
			return run()
		},
	}

	cmd.Flags().StringVar(&cfg.Era, "era", eras.DefaultEra, "Starting era ("+strings.Join(eras.Keys(), ", ")+")")
	cmd.Flags().IntVar(&cfg.FPS, "fps", 60, "Target FPS")
	cmd.Flags().BoolVar(&cfg.Window, "window", false, "Open a desktop window instead of rendering in the terminal")
	cmd.Flags().StringArrayVar(&textureFlags, "texture", nil,
		"Override an era texture, era=locator (file path, http(s) URL, or res: name); repeatable")
	cmd.Flags().StringVar(&cfg.TelemetryAddr, "telemetry", "", "Serve view-state over WebSocket on this host:port")
	cmd.Flags().StringVar(&cfg.IMUPort, "imu", "", "Drive orientation from quaternion lines on this serial port")
	cmd.Flags().IntVar(&cfg.Baud, "baud", 115200, "Serial baud rate for --imu")
	cmd.Flags().StringVar(&cfg.Background, "bg", "", "Background color (R,G,B)")

	erasCmd := &cobra.Command{
		Use:   "eras",
		Short: "List the era catalog",
		Long:  "List the five eras with their labels, periods, and current texture locators.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runEras()
		},
	}
	cmd.AddCommand(erasCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func runEras() error {
	if err := parseTextureFlags(); err != nil {
		return err
	}
	catalog := eras.NewCatalog()
	for era, locator := range cfg.TextureOverrides {
		if err := catalog.Override(era, locator); err != nil {
			return err
		}
	}
	for i, e := range catalog.Entries() {
		fmt.Printf("%d  %-12s %-20s %-18s %s\n", i+1, e.Key, e.Label, e.Period, e.Locator)
	}
	return nil
}

func parseTextureFlags() error {
	for _, f := range textureFlags {
		era, locator, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("texture override %q: want era=locator", f)
		}
		cfg.TextureOverrides[era] = locator
	}
	return nil
}

func run() error {
	if err := parseTextureFlags(); err != nil {
		return err
	}

	v, err := app.NewViewer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code int
	if cfg.Window {
		code = app.RunWindow(ctx, v, cfg)
	} else {
		code = app.RunTerminal(ctx, v, cfg)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
