// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"math/rand"
	"testing"
)

func encodeDecode(t *testing.T, frames []*Frame) {
	t.Helper()
	enc := NewEncoder()
	disp := &captureDisplay{}
	dec := NewDecoder(disp)
	for i, f := range frames {
		stream := enc.EncodeFrame(f)
		r := bytes.NewReader(stream)
		if err := dec.DecodeFrame(r); err != nil {
			t.Fatalf("frame %d: decode: %v", i, err)
		}
		if disp.buf != *f {
			t.Fatalf("frame %d: decoded frame does not match the original", i)
		}
		// Conservation: a stream summing to less than FrameSize fails to
		// decode, advanceCursor rejects one that overshoots, and any bytes
		// left unread once the cursor reaches FrameSize are caught here.
		if r.Len() != 0 {
			t.Fatalf("frame %d: %d stream bytes left after the frame ended", i, r.Len())
		}
	}
}

func TestRoundTrip30RandomFrames(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	frames := make([]*Frame, 30)
	var prev Frame
	for i := range frames {
		f := prev
		// Mutate a random subset of bytes so consecutive frames share
		// plenty of structure, like a real animation would.
		nChanges := rng.Intn(200)
		for c := 0; c < nChanges; c++ {
			f[rng.Intn(FrameSize)] = byte(rng.Intn(256))
		}
		frames[i] = &f
		prev = f
	}
	encodeDecode(t, frames)
}

func TestRoundTripAllOnesEveryOtherByte(t *testing.T) {
	var f Frame
	for i := 0; i < FrameSize; i += 2 {
		f[i] = 0xFF
	}
	encodeDecode(t, []*Frame{{}, &f, {}})
}

func TestRoundTripMaxRepeatBoundary(t *testing.T) {
	var f Frame
	for i := 0; i < maxRepeat+1; i++ {
		f[i] = 0x7E
	}
	encodeDecode(t, []*Frame{{}, &f})
}

func TestRoundTripMaxBigBoundary(t *testing.T) {
	var f Frame
	for i := 0; i < maxBig+1; i++ {
		f[i] = byte(i%255) + 1 // never 0, so all maxBig+1 bytes differ from prev
	}
	encodeDecode(t, []*Frame{{}, &f})
}

func TestRoundTripReencodeIsIdempotentGivenSameHistory(t *testing.T) {
	var f1, f2 Frame
	f2[10] = 1
	f2[900] = 1

	enc1 := NewEncoder()
	enc1.EncodeFrame(&f1)
	out1 := enc1.EncodeFrame(&f2)

	enc2 := NewEncoder()
	enc2.EncodeFrame(&f1)
	out2 := enc2.EncodeFrame(&f2)

	if !bytes.Equal(out1, out2) {
		t.Fatalf("encoding the same (prev, cur) pair twice produced different output")
	}
}
