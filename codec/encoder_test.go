// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"testing"
)

func TestScanRepeatsThreshold(t *testing.T) {
	data := []byte{1, 1, 2, 2, 2, 3, 4, 5}
	leftover, out := scanRepeats(data, nil)

	wantLeftover := []byte{3, 4, 5}
	if !bytes.Equal(leftover, wantLeftover) {
		t.Errorf("leftover = %v, want %v", leftover, wantLeftover)
	}
	// The run of two 1s is below minRepeat and must surface as a literal
	// ShortCopy, not a Repeat command; the run of three 2s must become one.
	want := []byte{shortCopySkip(2, 0), 1, 1, repeatOp(3), 2}
	if !bytes.Equal(out, want) {
		t.Errorf("out = %#v, want %#v", out, want)
	}
}

func TestScanRepeatsEmpty(t *testing.T) {
	leftover, out := scanRepeats(nil, nil)
	if leftover != nil || out != nil {
		t.Errorf("scanRepeats(nil) = %v, %v, want nil, nil", leftover, out)
	}
}

func TestScanRepeatsSplitsAtMaxRepeat(t *testing.T) {
	data := make([]byte, maxRepeat+5)
	for i := range data {
		data[i] = 0x42
	}
	leftover, out := scanRepeats(data, nil)
	if len(leftover) != 0 {
		t.Fatalf("leftover = %v, want empty (the trailing 5 still qualify as a repeat)", leftover)
	}
	want := []byte{repeatOp(maxRepeat), 0x42, repeatOp(5), 0x42}
	if !bytes.Equal(out, want) {
		t.Errorf("out = %#v, want %#v", out, want)
	}
}

func TestEncodeFirstFrameAllZero(t *testing.T) {
	enc := NewEncoder()
	var f Frame
	out := enc.EncodeFrame(&f)

	var want []byte
	for i := 0; i < FrameSize/maxRepeat; i++ {
		want = append(want, repeatOp(maxRepeat), 0x00)
	}
	if !bytes.Equal(out, want) {
		t.Errorf("out = %#v, want %#v", out, want)
	}
}

func TestEncodeIdenticalSecondFrame(t *testing.T) {
	enc := NewEncoder()
	var f Frame
	enc.EncodeFrame(&f) // first frame, intra-coded, not under test here.
	out := enc.EncodeFrame(&f)

	var want []byte
	for i := 0; i < FrameSize/maxBig; i++ {
		want = append(want, bigSkip, byte(maxBig-1))
	}
	if !bytes.Equal(out, want) {
		t.Errorf("out = %#v, want %#v", out, want)
	}
}

func TestEncodeSingleByteChange(t *testing.T) {
	enc := NewEncoder()
	var f1 Frame
	enc.EncodeFrame(&f1)

	f2 := f1
	f2[500] = 0x01
	out := enc.EncodeFrame(&f2)

	want := []byte{
		bigSkip, byte(256 - 1),
		bigSkip, byte(244 - 1),
		shortCopySkip(1, 0), 0x01,
		bigSkip, byte(256 - 1),
		bigSkip, byte(256 - 1),
		bigSkip, byte(11 - 1),
	}
	if !bytes.Equal(out, want) {
		t.Errorf("out = %#v, want %#v", out, want)
	}
}

func TestEncodeResetReencodesAsFirstFrame(t *testing.T) {
	enc := NewEncoder()
	var f Frame
	f[10] = 0xAB

	first := enc.EncodeFrame(&f)
	enc.EncodeFrame(&f) // now identical, a pure-skip frame.
	enc.Reset()
	afterReset := enc.EncodeFrame(&f)

	if !bytes.Equal(first, afterReset) {
		t.Errorf("after Reset, encoding the same frame = %#v, want %#v (same as the original first frame)", afterReset, first)
	}
}

func TestShortFormZeroZeroCollidesWithEscapes(t *testing.T) {
	// shortSkipCopy/shortCopySkip(0, 0) produce exactly the BigSkip/BigCopy
	// escape opcodes, which is why the encoder must never build a short form
	// with both fields zero. This checks the helpers' values only; it does
	// not scan encoder output.
	if shortSkipCopy(0, 0) != bigSkip {
		t.Fatal("shortSkipCopy(0,0) must equal the bigSkip escape opcode by construction")
	}
	if shortCopySkip(0, 0) != bigCopy {
		t.Fatal("shortCopySkip(0,0) must equal the bigCopy escape opcode by construction")
	}
}
