// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package player drives a codec.Decoder against a stream of encoded frames
// at a fixed frame rate, optionally looping the stream once exhausted.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/tinyoled/animator/codec"
)

// Opts configures Loop.
type Opts struct {
	// FPS is the target frame rate. Must be > 0.
	FPS float64
	// Loop replays the stream from the start once it is exhausted. Without
	// it, Loop returns nil once the last frame has played.
	Loop bool
	// Logger receives one line per discarded frame (malformed stream or
	// adapter I/O failure). A nil Logger discards these messages.
	Logger *log.Logger
}

// Loop decodes frames from r and emits them to disp at the configured
// frame rate until ctx is canceled, or r is exhausted with Loop false.
//
// A single frame that fails to decode (ErrMalformed) or emit
// (ErrAdapterIO) is logged and skipped; playback continues with the next
// frame. This matches the original player never aborting a whole run over
// one corrupt frame.
func Loop(ctx context.Context, r io.ReadSeeker, disp codec.Display, opts Opts) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("player: FPS must be > 0, got %v", opts.FPS)
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("player: measure stream: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("player: rewind stream: %w", err)
	}

	period := time.Duration(float64(time.Second) / opts.FPS)
	dec := codec.NewDecoder(disp)
	cr := &countingReader{r: r}

	for {
		if cr.pos >= size {
			if !opts.Loop {
				return nil
			}
			if _, err := r.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("player: rewind stream: %w", err)
			}
			cr.pos = 0
			continue
		}

		if err := dec.DecodeFrame(cr); err != nil {
			if errors.Is(err, codec.ErrMalformed) || errors.Is(err, codec.ErrAdapterIO) {
				opts.logf("player: discarding frame at offset %d: %v", cr.pos, err)
			} else {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(period):
		}
	}
}

func (o Opts) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// countingReader adapts an io.Reader to io.ByteReader while tracking the
// number of bytes consumed, so Loop can tell a clean end-of-stream apart
// from exhaustion mid-frame without relying on error values alone.
type countingReader struct {
	r   io.Reader
	pos int64
	buf [1]byte
}

func (c *countingReader) ReadByte() (byte, error) {
	n, err := c.r.Read(c.buf[:])
	if n == 1 {
		c.pos++
		return c.buf[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}
