package main

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/encode"
	"github.com/polyfloyd/trishade/scene"
)

func TestParseGeometry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		valid := map[string]struct {
			w, h uint
		}{
			"1x2":     {w: 1, h: 2},
			"2x1":     {w: 2, h: 1},
			"800x600": {w: 800, h: 600},
		}
		for input, expected := range valid {
			w, h, err := parseGeometry(input)
			if err != nil {
				t.Errorf("error parsing valid geometry %q: %v", input, err)
			}
			if w != expected.w || h != expected.h {
				t.Errorf("mismatched result (%d, %d), expected (%d, %d)", w, h, expected.w, expected.h)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"0x2",
			"2x0",
			"-1x1",
			"1x-1",
			"",
			" ",
			"x",
			"fooxbar",
			"lalala",
		}
		for _, input := range invalid {
			if _, _, err := parseGeometry(input); err == nil {
				t.Errorf("expected an error while parsing invalid geometry %q", input)
			}
		}
	})
}

func TestColorEnabled(t *testing.T) {
	on, err := colorEnabled("on", os.Stderr)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := colorEnabled("off", os.Stderr)
	require.NoError(t, err)
	assert.False(t, off)

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	auto, err := colorEnabled("auto", f)
	require.NoError(t, err)
	assert.False(t, auto, "a regular file is not a terminal")

	_, err = colorEnabled("sometimes", os.Stderr)
	assert.Error(t, err)
}

func newSceneCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSceneFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplySceneFlags(t *testing.T) {
	sc := config.Default().Scene
	require.NoError(t, applySceneFlags(newSceneCmd(t), &sc))
	assert.Equal(t, config.Default().Scene, sc, "unset flags leave the configuration alone")
	assert.Equal(t, scene.Plain, variantOf(sc))

	sc = config.Default().Scene
	require.NoError(t, applySceneFlags(newSceneCmd(t, "--animate"), &sc))
	assert.True(t, sc.Animate)
	assert.True(t, sc.Colored)
	assert.Equal(t, scene.Colored, variantOf(sc))

	sc = config.Default().Scene
	sc.Colored = true
	require.NoError(t, applySceneFlags(newSceneCmd(t, "--colored=false"), &sc))
	assert.False(t, sc.Colored)
}

func newRenderCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "render"}
	cmd.Flags().AddFlagSet(renderCmd.Flags())
	// The flag set is shared with renderCmd; reset what a previous parse set.
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseRenderOptions(t *testing.T) {
	sess.cfg = config.Default()

	opts, err := parseRenderOptions(newRenderCmd(t, "-o", "out.png"))
	require.NoError(t, err)
	assert.Equal(t, encode.PNGFormat{}, opts.format)
	assert.Equal(t, uint(800), opts.width)
	assert.Equal(t, uint(600), opts.height)
	assert.Equal(t, uint(1), opts.numFrames)
	assert.Zero(t, opts.interval)

	opts, err = parseRenderOptions(newRenderCmd(t, "-o", "out.gif", "-g", "64x32", "-f", "25", "-n", "50"))
	require.NoError(t, err)
	assert.Equal(t, encode.GIFFormat{}, opts.format)
	assert.Equal(t, uint(64), opts.width)
	assert.Equal(t, uint(32), opts.height)
	assert.Equal(t, 40*time.Millisecond, opts.interval)
	assert.Equal(t, uint(50), opts.numFrames)

	invalid := [][]string{
		{"-o", "out.bmp"},
		{"-o", "-"},
		{"-o", "out.png", "-g", "0x10"},
		{"-o", "out.gif", "-n", "10"},
		{"-o", "out.gif", "-f", "-1"},
	}
	for _, args := range invalid {
		_, err := parseRenderOptions(newRenderCmd(t, args...))
		assert.Error(t, err, "%v", args)
	}
}
