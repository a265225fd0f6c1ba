package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/trishade/encode"
	"github.com/polyfloyd/trishade/renderer"
	"github.com/polyfloyd/trishade/scene"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the triangle offscreen and write the frames to a file",
	Example: `  trishade render -o triangle.png
  trishade render --animate -f 25 -n 75 -o triangle.gif
  trishade render -g 80x40 --ofmt ansi`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addSceneFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "-", "the file to write the rendered image to")
	renderCmd.Flags().String("ofmt", "", "the encoding format of the output, detected from the file name if empty. Valid values are: "+fmt.Sprint(encode.Names()))
	renderCmd.Flags().StringP("geometry", "g", "", "the geometry of the rendered image in WIDTHxHEIGHT format, the window size by default")
	renderCmd.Flags().Float64P("framerate", "f", 0, "animate using the specified number of frames per second")
	renderCmd.Flags().UintP("numframes", "n", 1, "the number of frames to render, 0 renders until interrupted")
}

type renderOptions struct {
	output        string
	format        encode.Format
	width, height uint
	interval      time.Duration
	numFrames     uint
}

func parseRenderOptions(cmd *cobra.Command) (renderOptions, error) {
	flags := cmd.Flags()
	var opts renderOptions
	opts.output, _ = flags.GetString("output")
	ofmt, _ := flags.GetString("ofmt")
	geometry, _ := flags.GetString("geometry")
	framerate, _ := flags.GetFloat64("framerate")
	opts.numFrames, _ = flags.GetUint("numframes")

	var err error
	if opts.format, err = encode.Lookup(ofmt, opts.output); err != nil {
		return opts, err
	}

	opts.width, opts.height = uint(sess.cfg.Window.Width), uint(sess.cfg.Window.Height)
	if geometry != "" {
		if opts.width, opts.height, err = parseGeometry(geometry); err != nil {
			return opts, err
		}
	}

	if framerate < 0 {
		return opts, fmt.Errorf("the framerate can not be negative")
	}
	if framerate == 0 && opts.numFrames != 1 {
		return opts, fmt.Errorf("rendering %d frames requires a framerate to be set with -f", opts.numFrames)
	}
	if framerate > 0 {
		opts.interval = time.Duration(float64(time.Second) / framerate)
	}
	return opts, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := parseRenderOptions(cmd)
	if err != nil {
		return err
	}

	teardown, err := headlessContext(sess.cfg.GL)
	if err != nil {
		return err
	}
	defer teardown()

	variant := variantOf(sess.cfg.Scene)
	sc, err := scene.New(newBuilder(), sess.cfg.Scene)
	if err != nil {
		return reportBuildError(cmd, err, variant)
	}
	defer sc.Close()

	off, err := renderer.NewOffscreen(opts.width, opts.height)
	if err != nil {
		return err
	}
	defer off.Close()

	out, err := openWriter(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stream := make(chan image.Image, off.NumBuffers())
	encodeErr := make(chan error, 1)
	go func() {
		err := opts.format.EncodeAnimation(out, stream, opts.interval)
		if err != nil {
			// Stop rendering frames nobody will read.
			cancel()
		}
		encodeErr <- err
	}()

	start := time.Now()
	renderErr := off.Animate(ctx, sc.Frame, opts.interval, opts.numFrames, stream)
	close(stream)
	if err := <-encodeErr; err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		return renderErr
	}
	sess.logger.Info("Render complete",
		"program", variant,
		"geometry", fmt.Sprintf("%dx%d", opts.width, opts.height),
		"elapsed", time.Since(start))
	return nil
}

func openWriter(filename string, stdout io.Writer) (io.WriteCloser, error) {
	if filename == "-" {
		return nopCloseWriter{Writer: stdout}, nil
	}
	return os.Create(filename)
}

type nopCloseWriter struct {
	io.Writer
}

func (nopCloseWriter) Close() error {
	return nil
}
