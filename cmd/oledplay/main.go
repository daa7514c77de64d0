// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command oledplay plays back a command stream produced by cmd/tcomp,
// either on a real SSD1306-family display or, with -preview, in the
// terminal.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tinyoled/animator/codec"
	"github.com/tinyoled/animator/common"
	"github.com/tinyoled/animator/player"
	"github.com/tinyoled/animator/ssd1306"
	"github.com/tinyoled/animator/termdisplay"
)

func main() {
	in := flag.String("in", "", "compressed animation path, as produced by tcomp")
	channel := flag.String("chan", "", "I2C bus name (empty for the first available bus)")
	addr := flag.Uint("addr", 0x3c, "I2C address of the display")
	rate := flag.Float64("rate", 30, "playback frame rate")
	loop := flag.Bool("loop", false, "replay the stream once it's exhausted")
	bad := flag.Bool("bad", false, "the display doesn't auto-advance across page boundaries in horizontal mode")
	preview := flag.Bool("preview", false, "render to the terminal instead of a real display")
	flag.Parse()

	if *in == "" {
		log.Fatal("oledplay: -in is required")
	}

	stream, err := readStream(*in)
	if err != nil {
		log.Fatalf("oledplay: %v", err)
	}

	disp, closeDisp, err := openDisplay(*preview, *channel, uint16(*addr), *bad)
	if err != nil {
		log.Fatalf("oledplay: %v", err)
	}
	defer closeDisp()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := player.Opts{
		FPS:    *rate,
		Loop:   *loop,
		Logger: log.Default(),
	}
	if err := player.Loop(ctx, bytes.NewReader(stream), disp, opts); err != nil && ctx.Err() == nil {
		log.Fatalf("oledplay: %v", err)
	}
}

// readStream loads a tcomp container, verifies its trailing CRC8, and
// returns the command stream with the checksum byte stripped.
func readStream(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) < 1 {
		return nil, fmt.Errorf("%s: empty container", path)
	}
	payload, want := data[:len(data)-1], data[len(data)-1]
	if got := common.CRC8(payload); got != want {
		return nil, fmt.Errorf("%s: checksum mismatch, got 0x%02x want 0x%02x (file truncated or corrupted)", path, got, want)
	}
	return payload, nil
}

// openDisplay returns the codec.Display to play to and a func to release
// any underlying hardware resource.
func openDisplay(preview bool, channel string, addr uint16, bad bool) (codec.Display, func(), error) {
	if preview {
		d := termdisplay.New(nil)
		return d, func() { _ = d.Halt() }, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w: %w", codec.ErrResourceInit, err)
	}
	bus, err := i2creg.Open(channel)
	if err != nil {
		return nil, nil, fmt.Errorf("open i2c bus %q: %w: %w", channel, codec.ErrResourceInit, err)
	}
	opts := ssd1306.DefaultOpts
	opts.Addr = addr
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		_ = bus.Close()
		return nil, nil, fmt.Errorf("init display at 0x%02x: %w: %w", addr, codec.ErrResourceInit, err)
	}
	dev.BadAddressing = bad
	return dev, func() {
		_ = dev.Halt()
		_ = bus.Close()
	}, nil
}
