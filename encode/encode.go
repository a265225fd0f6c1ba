package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"time"
)

type PNGFormat struct{}

func (PNGFormat) Extensions() []string { return []string{"png"} }

func (PNGFormat) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (f PNGFormat) EncodeAnimation(w io.Writer, stream <-chan image.Image, _ time.Duration) error {
	return encodeEach(w, stream, f.Encode)
}

type JPGFormat struct{}

func (JPGFormat) Extensions() []string { return []string{"jpg", "jpeg"} }

func (JPGFormat) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}

func (f JPGFormat) EncodeAnimation(w io.Writer, stream <-chan image.Image, _ time.Duration) error {
	return encodeEach(w, stream, f.Encode)
}

// RGBA32Format writes raw 8 bit RGBA pixels, row by row from the top.
type RGBA32Format struct{}

func (RGBA32Format) Extensions() []string { return nil }

func (RGBA32Format) Encode(w io.Writer, img image.Image) error {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*rgba.Rect.Dx() {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

func (f RGBA32Format) EncodeAnimation(w io.Writer, stream <-chan image.Image, _ time.Duration) error {
	return encodeEach(w, stream, f.Encode)
}

type GIFFormat struct{}

func (GIFFormat) Extensions() []string { return []string{"gif"} }

func (f GIFFormat) Encode(w io.Writer, img image.Image) error {
	return f.EncodeAnimation(w, single(img), 0)
}

func (GIFFormat) EncodeAnimation(w io.Writer, stream <-chan image.Image, interval time.Duration) error {
	anim := &gif.GIF{}
	for img := range stream {
		frame := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.Draw(frame, img.Bounds(), img, img.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, int(interval/(time.Second/100)))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	return gif.EncodeAll(w, anim)
}

// ANSIFormat draws frames on a true color terminal.
type ANSIFormat struct {
	initDone bool
}

func (*ANSIFormat) Extensions() []string { return nil }

func (f *ANSIFormat) Encode(w io.Writer, img image.Image) error {
	return f.EncodeAnimation(w, single(img), 0)
}

func (f *ANSIFormat) EncodeAnimation(w io.Writer, stream <-chan image.Image, interval time.Duration) error {
	lastFrame := time.Now()
	for img := range stream {
		b := img.Bounds()
		var buf bytes.Buffer
		if !f.initDone {
			// Clear the screen and any previous frame with it.
			buf.WriteString("\x1b[3J\x1b[H\x1b[2J")
			f.initDone = true
		} else {
			// Move the cursor to the top-left of the screen.
			buf.WriteString("\x1b[1;1H")
		}

		// Two pixels are drawn per character with the upper half block: the
		// foreground color is the top pixel and the background the bottom.
		for y := b.Min.Y; y < b.Max.Y; y += 2 {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", r>>8, g>>8, bl>>8)
				if y+1 < b.Max.Y {
					r, g, bl, _ := img.At(x, y+1).RGBA()
					fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm", r>>8, g>>8, bl>>8)
				} else {
					buf.WriteString("\x1b[49m")
				}
				buf.WriteString("▀")
			}
			buf.WriteString("\x1b[0m\n")
		}
		if _, err := io.Copy(w, &buf); err != nil {
			return err
		}

		time.Sleep(interval - time.Since(lastFrame))
		lastFrame = time.Now()
	}
	return nil
}
