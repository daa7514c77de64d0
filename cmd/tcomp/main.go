// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command tcomp compresses an animated GIF into the command stream codec
// package decodes, for playback by cmd/oledplay.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tinyoled/animator/codec"
	"github.com/tinyoled/animator/common"
	"github.com/tinyoled/animator/imagesource"
)

func main() {
	in := flag.String("in", "", "input animated GIF path")
	out := flag.String("out", "", "output path (required unless -c is set, in which case stdout)")
	left := flag.Int("left", 0, "left crop origin")
	top := flag.Int("top", 0, "top crop origin")
	asGoSource := flag.Bool("c", false, "emit a Go source literal (a []byte var) instead of raw bytes")
	invert := flag.Bool("invert", false, "invert the rasterized bits")
	flag.Parse()

	if *in == "" {
		log.Fatal("tcomp: -in is required")
	}

	if err := run(*in, *out, *left, *top, *asGoSource, *invert); err != nil {
		log.Fatalf("tcomp: %v", err)
	}
}

func run(inPath, outPath string, left, top int, asGoSource, invert bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	src, err := imagesource.OpenGIF(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer out.Close()
		w = out
	} else if !asGoSource {
		return errors.New("-out is required unless -c is set")
	}

	bw := bufio.NewWriter(w)
	enc := codec.NewEncoder()
	var stream []byte
	nFrames := 0
	for {
		raster, err := src.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", nFrames, err)
		}
		frame, err := codec.Rasterize(raster, left, top, invert)
		if err != nil {
			return &codec.EncodeError{Frame: nFrames, Err: err}
		}
		stream = append(stream, enc.EncodeFrame(&frame)...)
		nFrames++
	}

	// A trailing CRC8 over the whole stream lets oledplay catch a
	// truncated or bit-flipped transfer before it ever reaches the decoder.
	stream = append(stream, common.CRC8(stream))

	if asGoSource {
		if err := writeGoSource(bw, stream); err != nil {
			return err
		}
	} else {
		if _, err := bw.Write(stream); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	log.Printf("tcomp: %d frames, %d bytes compressed", nFrames, len(stream))
	return nil
}

// writeGoSource emits data as a standalone Go source file declaring a
// []byte literal, for embedding an animation directly in a binary.
func writeGoSource(w io.Writer, data []byte) error {
	if _, err := fmt.Fprintln(w, "// Code generated by tcomp. DO NOT EDIT."); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "package main"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nvar animationFrames = []byte{"); err != nil {
		return err
	}
	for i, b := range data {
		if i%16 == 0 {
			if _, err := fmt.Fprint(w, "\n\t"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "0x%02x, ", b); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "\n}")
	return err
}
