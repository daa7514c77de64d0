// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termdisplay implements codec.Display by rendering decoded frames
// to an ANSI terminal, for previewing animations without an attached OLED.
//
// It reuses the teacher's screen1d package's approach: one colored console
// cell per pixel, redrawn in place on an interactive terminal.
package termdisplay

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/tinyoled/animator/codec"
)

// Opts configures a Dev.
type Opts struct {
	Palette *ansi256.Palette
	// On and Off are the colors used for lit and unlit pixels.
	On, Off color.NRGBA

	_ struct{}
}

// DefaultOpts renders lit pixels white on a black background.
var DefaultOpts = Opts{
	On:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Off: color.NRGBA{A: 255},
}

// Dev renders the display-order frame buffer to the console. It implements
// codec.Display.
type Dev struct {
	w           io.Writer
	palette     ansi256.Palette
	on, off     color.NRGBA
	interactive bool

	buffer   codec.Frame
	cursor   int
	rendered bool
	buf      bytes.Buffer
}

// New returns a Dev that writes to stdout.
func New(opts *Opts) *Dev {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on == (color.NRGBA{}) {
		on = DefaultOpts.On
	}
	if off == (color.NRGBA{}) {
		off = DefaultOpts.Off
	}
	return &Dev{
		w:           colorable.NewColorableStdout(),
		palette:     *p,
		on:          on,
		off:         off,
		interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (d *Dev) String() string {
	return "termdisplay.Dev"
}

// Halt implements conn.Resource. It resets the terminal's color state.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// SetCursor implements codec.Display.
func (d *Dev) SetCursor(offset int) error {
	if offset < 0 || offset > codec.FrameSize {
		return fmt.Errorf("termdisplay: cursor %d out of range", offset)
	}
	d.cursor = offset
	return nil
}

// WriteBlock implements codec.Display.
func (d *Dev) WriteBlock(p []byte) error {
	if d.cursor+len(p) > codec.FrameSize {
		return fmt.Errorf("termdisplay: write of %d bytes at cursor %d overflows frame", len(p), d.cursor)
	}
	copy(d.buffer[d.cursor:], p)
	d.cursor += len(p)
	_, err := d.render()
	return err
}

// render redraws the whole frame buffer, moving the cursor back up over
// the previous render on an interactive terminal so the animation plays in
// place instead of scrolling.
func (d *Dev) render() (int, error) {
	d.buf.Reset()
	if d.interactive && d.rendered {
		fmt.Fprintf(&d.buf, "\033[%dA\r", codec.Height)
	}
	for page := 0; page < codec.Pages; page++ {
		for bit := 0; bit < 8; bit++ {
			for col := 0; col < codec.Width; col++ {
				b := d.buffer[page*codec.Width+col]
				c := d.off
				if b>>uint(bit)&1 != 0 {
					c = d.on
				}
				_, _ = io.WriteString(&d.buf, d.palette.Block(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}))
			}
			_, _ = d.buf.WriteString("\033[0m\n")
		}
	}
	n, err := d.buf.WriteTo(d.w)
	d.rendered = true
	return int(n), err
}

var _ codec.Display = &Dev{}
