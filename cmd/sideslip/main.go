// SPDX-License-Identifier: Unlicense OR MIT

// Command sideslip shows a side panel that is dragged in from the
// edge of the window together with the content.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/spf13/cobra"
)

func main() {
	go func() {
		if err := newRootCmd().Execute(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func newRootCmd() *cobra.Command {
	var (
		path  string
		edge  string
		width float32
	)
	cmd := &cobra.Command{
		Use:           "sideslip",
		Short:         "Drag a side panel in from the window edge",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("edge") {
				cfg.Edge = edge
			}
			if flags.Changed("panel-width") {
				cfg.PanelWidth = width
			}
			if err := cfg.validate(); err != nil {
				return fmt.Errorf("flags: %w", err)
			}
			return run(cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&path, "config", "c", "", "TOML configuration file")
	flags.StringVar(&edge, "edge", "", "panel edge: leading or trailing")
	flags.Float32Var(&width, "panel-width", 0, "panel width in dp, 0 to fit the panel")
	return cmd
}

func run(cfg Config) error {
	level, _ := cfg.level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ui, err := newUI(cfg, logger)
	if err != nil {
		return err
	}
	w := new(app.Window)
	w.Option(
		app.Title(cfg.Title),
		app.Size(unit.Dp(420), unit.Dp(720)),
	)
	logger.Info("window created", "edge", ui.edge, "panel_width", cfg.PanelWidth)
	return loop(w, ui)
}

func loop(w *app.Window, ui *UI) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
