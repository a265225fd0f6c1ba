// Package encode writes rendered frames to image files and terminals.
package encode

import (
	"fmt"
	"image"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

type Format interface {
	// Extensions returns all file extensions excluding '.' that this format is
	// commonly encoded into.
	Extensions() []string

	// Encode encodes a single image to the specfied io.Writer.
	Encode(w io.Writer, img image.Image) error

	// EncodeAnimation encodes a series of successive images to the specified
	// io.Writer.
	//
	// The function should consume all images from the stream until it closes.
	// The interval parameter is the time between two images.
	EncodeAnimation(w io.Writer, stream <-chan image.Image, interval time.Duration) error
}

var Formats = map[string]Format{
	"ansi":   &ANSIFormat{},
	"gif":    GIFFormat{},
	"jpg":    JPGFormat{},
	"png":    PNGFormat{},
	"rgba32": RGBA32Format{},
}

// Names returns the names of all formats in lexical order.
func Names() []string {
	names := make([]string, 0, len(Formats))
	for name := range Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect picks a format by the extension of filename.
func Detect(filename string) (Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return nil, false
	}
	for _, f := range Formats {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, true
			}
		}
	}
	return nil, false
}

// Lookup returns the format with the given name, or detects it from filename
// if name is empty.
func Lookup(name, filename string) (Format, error) {
	if name == "" {
		if f, ok := Detect(filename); ok {
			return f, nil
		}
		return nil, fmt.Errorf("unable to detect the output format of %q, please set it explicitly", filename)
	}
	f, ok := Formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q, valid formats are: %s", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// encodeEach concatenates the encoding of every image in the stream.
func encodeEach(w io.Writer, stream <-chan image.Image, encode func(io.Writer, image.Image) error) error {
	for img := range stream {
		if err := encode(w, img); err != nil {
			return err
		}
	}
	return nil
}

// single wraps one image in a closed stream.
func single(img image.Image) <-chan image.Image {
	stream := make(chan image.Image, 1)
	stream <- img
	close(stream)
	return stream
}
