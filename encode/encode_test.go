package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestDetect(t *testing.T) {
	valid := map[string]Format{
		"out.png":      PNGFormat{},
		"OUT.PNG":      PNGFormat{},
		"a/b/c.jpeg":   JPGFormat{},
		"triangle.jpg": JPGFormat{},
		"anim.gif":     GIFFormat{},
	}
	for name, expected := range valid {
		f, ok := Detect(name)
		require.True(t, ok, name)
		assert.Equal(t, expected, f, name)
	}

	for _, name := range []string{"-", "out", "out.bmp", ""} {
		_, ok := Detect(name)
		assert.False(t, ok, name)
	}
}

func TestLookup(t *testing.T) {
	f, err := Lookup("rgba32", "-")
	require.NoError(t, err)
	assert.Equal(t, RGBA32Format{}, f)

	f, err = Lookup("", "frame.png")
	require.NoError(t, err)
	assert.Equal(t, PNGFormat{}, f)

	_, err = Lookup("", "-")
	assert.Error(t, err)
	_, err = Lookup("bmp", "-")
	assert.ErrorContains(t, err, "ansi, gif, jpg, png, rgba32")
}

func TestRGBA32(t *testing.T) {
	img := testImage()
	var buf bytes.Buffer
	require.NoError(t, RGBA32Format{}.Encode(&buf, img))
	assert.Equal(t, img.Pix, buf.Bytes())

	// Images of other types are converted.
	buf.Reset()
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 0x80})
	require.NoError(t, RGBA32Format{}.Encode(&buf, gray))
	assert.Equal(t, []byte{0x80, 0x80, 0x80, 0xff}, buf.Bytes())
}

func TestPNGRoundTrip(t *testing.T) {
	img := testImage()
	var buf bytes.Buffer
	require.NoError(t, PNGFormat{}.Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.At(1, 0), color.RGBAModel.Convert(decoded.At(1, 0)))
}

func TestGIFAnimation(t *testing.T) {
	stream := make(chan image.Image, 3)
	for i := 0; i < 3; i++ {
		stream <- testImage()
	}
	close(stream)

	var buf bytes.Buffer
	require.NoError(t, GIFFormat{}.EncodeAnimation(&buf, stream, 50*time.Millisecond))
	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{5, 5, 5}, anim.Delay)
}

func TestGIFEmptyStream(t *testing.T) {
	stream := make(chan image.Image)
	close(stream)
	assert.Error(t, GIFFormat{}.EncodeAnimation(&bytes.Buffer{}, stream, 0))
}

func TestANSI(t *testing.T) {
	var buf bytes.Buffer
	f := &ANSIFormat{}
	require.NoError(t, f.Encode(&buf, testImage()))
	out := buf.String()
	assert.Contains(t, out, "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀")
	assert.Contains(t, out, "\x1b[38;2;0;255;0m\x1b[48;2;255;255;255m▀")
}
