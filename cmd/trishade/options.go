package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/scene"
	"github.com/polyfloyd/trishade/shader"
)

// addSceneFlags registers the flags that select and animate the program.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("colored", false, "use the program with a per-vertex color attribute")
	cmd.Flags().Bool("animate", false, "cycle the color of one vertex every frame, implies --colored")
}

func applySceneFlags(cmd *cobra.Command, sc *config.Scene) error {
	if f := cmd.Flags().Lookup("colored"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("colored")
		if err != nil {
			return err
		}
		sc.Colored = v
	}
	if f := cmd.Flags().Lookup("animate"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("animate")
		if err != nil {
			return err
		}
		sc.Animate = v
		if v {
			sc.Colored = true
		}
	}
	return nil
}

func colorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid --color value %q, expected auto, on or off", mode)
}

func variantOf(sc config.Scene) scene.Variant {
	if sc.Colored {
		return scene.Colored
	}
	return scene.Plain
}

func newBuilder() *shader.Builder {
	return shader.NewBuilder(shader.GLDriver{})
}

// reportBuildError pretty prints shader diagnostics. Other errors are
// returned unchanged.
func reportBuildError(cmd *cobra.Command, err error, variant scene.Variant) error {
	var berr *shader.BuildError
	if !errors.As(err, &berr) {
		return err
	}
	var src shader.Source
	vert, frag := scene.Sources(variant)
	switch berr.Phase.Stage() {
	case shader.StageVertex:
		src = vert
	case shader.StageFragment:
		src = frag
	}
	sess.logger.Error("Shader program build failed", "program", variant, "phase", berr.Phase)
	berr.PrettyPrint(cmd.ErrOrStderr(), src, sess.color)
	return errReported
}

var geometryRe = regexp.MustCompile(`^(\d+)x(\d+)$`)

func parseGeometry(geom string) (uint, uint, error) {
	matches := geometryRe.FindStringSubmatch(geom)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid geometry: %q", geom)
	}
	w, _ := strconv.ParseUint(matches[1], 10, 32)
	h, _ := strconv.ParseUint(matches[2], 10, 32)
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("no geometry dimension can be 0, got (%d, %d)", w, h)
	}
	return uint(w), uint(h), nil
}
