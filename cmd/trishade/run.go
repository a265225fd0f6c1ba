package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/trishade/renderer"
	"github.com/polyfloyd/trishade/scene"
	"github.com/polyfloyd/trishade/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and draw the triangle every frame",
	Long:  "Open a window and draw the triangle every frame. Press Escape to close the window.",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func init() {
	addSceneFlags(runCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := sess.cfg

	win, err := window.Open(cfg.Window, cfg.GL, sess.logger)
	if err != nil {
		return err
	}
	defer win.Close()
	sess.logger.Debug("OpenGL context created", renderer.ContextInfo()...)

	if cfg.GL.Debug {
		if messages, err := renderer.DebugOutput(); err != nil {
			sess.logger.Warn("OpenGL debug output unavailable", "err", err)
		} else {
			renderer.LogDebugOutput(ctx, sess.logger, messages)
		}
	}

	variant := variantOf(cfg.Scene)
	sc, err := scene.New(newBuilder(), cfg.Scene)
	if err != nil {
		return reportBuildError(cmd, err, variant)
	}
	defer sc.Close()
	sess.logger.Info("Rendering", "program", variant, "animate", cfg.Scene.Animate)

	err = win.Run(ctx, sc.Frame)
	if errors.Is(err, window.ErrClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}
