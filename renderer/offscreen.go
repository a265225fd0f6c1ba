// Package renderer draws frames into offscreen targets and reads them back
// as images.
package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Offscreen renders into a ring of framebuffers. Every frame is copied into
// a pixel buffer so the read back of one frame overlaps with drawing the
// next.
type Offscreen struct {
	w, h           uint
	curTargetIndex int
	targets        [3]struct {
		pbo, rbo, fbo uint32
	}
}

// NewOffscreen allocates the render targets. A context must be current.
func NewOffscreen(width, height uint) (*Offscreen, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("no render target dimension can be 0, got (%d, %d)", width, height)
	}
	o := &Offscreen{w: width, h: height, curTargetIndex: -1}
	for i := range o.targets {
		t := &o.targets[i]
		// Framebuffer.
		gl.GenFramebuffers(1, &t.fbo)
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
		// Color renderbuffer.
		gl.GenRenderbuffers(1, &t.rbo)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.rbo)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
		gl.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.rbo)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			o.Close()
			return nil, fmt.Errorf("framebuffer %d is incomplete: %#x", i, status)
		}
		gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
		gl.ReadBuffer(gl.COLOR_ATTACHMENT0)

		// Pixelbuffer.
		gl.GenBuffers(1, &t.pbo)
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, t.pbo)
		gl.BufferData(gl.PIXEL_PACK_BUFFER, int(width*height*4), nil, gl.DYNAMIC_READ)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return o, nil
}

func (o *Offscreen) NumBuffers() int {
	return len(o.targets)
}

// Draw renders a single frame with the draw function into the next target
// and starts the transfer to its pixel buffer. The returned handle is valid
// until NumBuffers more frames have been drawn.
func (o *Offscreen) Draw(draw func() error) (int, error) {
	o.curTargetIndex = (o.curTargetIndex + 1) % len(o.targets)
	t := &o.targets[o.curTargetIndex]
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(o.w), int32(o.h))
	if err := draw(); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return 0, err
	}
	// Start the transfer of the image to the PBO.
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, t.pbo)
	gl.ReadPixels(0, 0, int32(o.w), int32(o.h), gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return o.curTargetIndex, nil
}

// Image waits for the frame behind the handle and copies it out. OpenGL
// stores rows bottom up, so the image is returned flipped.
func (o *Offscreen) Image(handle int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, int(o.w), int(o.h)))
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, o.targets[handle].pbo)
	gl.GetBufferSubData(gl.PIXEL_PACK_BUFFER, 0, int(o.w*o.h*4), gl.Ptr(&img.Pix[0]))
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	return &Flip{Image: img}
}

// Animate draws numFrames frames, or frames until ctx is canceled if
// numFrames is 0, and sends them to the stream in order. Frame n is drawn at
// time n*interval.
func (o *Offscreen) Animate(ctx context.Context, frame func(time.Duration) error, interval time.Duration, numFrames uint, stream chan<- image.Image) error {
	pending := make([]int, 0, len(o.targets))
	emit := func() error {
		img := o.Image(pending[0])
		pending = append(pending[:0], pending[1:]...)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case stream <- img:
			return nil
		}
	}

	for n := uint(0); numFrames == 0 || n < numFrames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		// The oldest target is about to be drawn over.
		if len(pending) == cap(pending) {
			if err := emit(); err != nil {
				return err
			}
		}
		t := time.Duration(n) * interval
		handle, err := o.Draw(func() error { return frame(t) })
		if err != nil {
			return err
		}
		pending = append(pending, handle)
	}
	for len(pending) > 0 {
		if err := emit(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Offscreen) Close() error {
	for _, t := range o.targets {
		gl.DeleteFramebuffers(1, &t.fbo)
		gl.DeleteRenderbuffers(1, &t.rbo)
		gl.DeleteBuffers(1, &t.pbo)
	}
	return nil
}

// Flip wraps an image and flips it upside down.
type Flip struct {
	image.Image
}

func (flip *Flip) At(x, y int) color.Color {
	b := flip.Bounds()
	return flip.Image.At(x, b.Max.Y-1-(y-b.Min.Y))
}
