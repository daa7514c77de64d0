// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package imagesource implements the collaborator the codec's Rasterizer
// consumes from: something that delivers one composited RGB565 frame at a
// time. Decoding the input animation format is explicitly out of scope for
// the codec itself (see spec §6.3); this package is the default
// implementation of that contract, backed by the standard library's
// animated GIF decoder.
package imagesource

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/tinyoled/animator/codec"
)

// Source delivers frames on demand. NextFrame returns io.EOF once the
// animation is exhausted.
type Source interface {
	NextFrame() (codec.RasterSource, error)
}

// gifSource walks the frames of a decoded animated GIF, compositing each
// one over a running canvas per its disposal method so that NextFrame
// always returns a frame "already composited against the prior frame's
// display state", matching the contract in spec §6.3.
type gifSource struct {
	g       *gif.GIF
	canvas  *image.RGBA
	next    int
	pitch   int
	scratch []byte
}

// OpenGIF decodes an animated GIF from r and returns a Source over its
// frames. Only the 16-bpp (RGB565) raster path is supported downstream by
// codec.Rasterize; OpenGIF itself accepts any GIF palette and converts to
// RGB565 internally.
func OpenGIF(r io.Reader) (Source, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("imagesource: decode gif: %w: %v", codec.ErrDecodeInput, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("imagesource: gif has no frames: %w", codec.ErrDecodeInput)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	draw.Draw(canvas, canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return &gifSource{
		g:      g,
		canvas: canvas,
		pitch:  g.Config.Width * 2,
	}, nil
}

// NextFrame composites the next GIF frame over the running canvas
// (honoring DisposalBackground/DisposalPrevious per the GIF89a spec) and
// converts the result to RGB565.
func (s *gifSource) NextFrame() (codec.RasterSource, error) {
	if s.next >= len(s.g.Image) {
		return codec.RasterSource{}, io.EOF
	}
	idx := s.next
	s.next++

	frame := s.g.Image[idx]
	disposal := byte(0)
	if idx < len(s.g.Disposal) {
		disposal = s.g.Disposal[idx]
	}

	prev := image.NewRGBA(s.canvas.Bounds())
	draw.Draw(prev, prev.Bounds(), s.canvas, image.Point{}, draw.Src)

	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

	out := rgb565(s.canvas, s.pitch, &s.scratch)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		draw.Draw(s.canvas, s.canvas.Bounds(), prev, image.Point{}, draw.Src)
	}

	return codec.RasterSource{
		Width:  s.canvas.Bounds().Dx(),
		Height: s.canvas.Bounds().Dy(),
		Pitch:  s.pitch,
		Pix:    out,
	}, nil
}

// rgb565 converts img to a row-major RGB565 byte buffer with the given
// pitch, reusing *scratch across calls.
func rgb565(img *image.RGBA, pitch int, scratch *[]byte) []byte {
	b := img.Bounds()
	need := pitch * b.Dy()
	if cap(*scratch) < need {
		*scratch = make([]byte, need)
	}
	buf := (*scratch)[:need]
	for y := 0; y < b.Dy(); y++ {
		row := buf[y*pitch:]
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			r5 := byte(r>>8) >> 3
			g6 := byte(g>>8) >> 2
			b5 := byte(bl>>8) >> 3
			hi := r5<<3 | g6>>3
			lo := g6<<5 | b5
			row[2*x] = lo
			row[2*x+1] = hi
		}
	}
	return buf
}
