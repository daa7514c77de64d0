// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"image"
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/tinyoled/animator/codec"
)

// newTestDev builds a Dev directly, skipping newDev's own init-command
// transaction, so tests can assert exactly on the codec.Display traffic.
func newTestDev(t *testing.T, ops []i2ctest.IO) *Dev {
	t.Helper()
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	t.Cleanup(func() {
		if err := pb.Close(); err != nil {
			t.Error(err)
		}
	})
	return &Dev{
		c:       &i2c.Dev{Bus: pb, Addr: 0x3c},
		variant: _SSD1306,
		rect:    image.Rect(0, 0, codec.Width, codec.Height),
		cursor:  -1,
	}
}

func TestDev_AutoAdvance(t *testing.T) {
	ops := []i2ctest.IO{
		{Addr: 0x3c, W: []byte{i2cCmd, 0xB0, 0x00, 0x10}},
		{Addr: 0x3c, W: []byte{i2cData, 0xAA, 0xBB}},
		{Addr: 0x3c, W: []byte{i2cData, 0xCC}},
	}
	d := newTestDev(t, ops)

	if err := d.SetCursor(0); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteBlock([]byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}
	// A redundant SetCursor to the position the hardware is already at
	// should not emit any command on the auto-advancing path.
	if err := d.SetCursor(2); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteBlock([]byte{0xCC}); err != nil {
		t.Fatal(err)
	}
}

func TestDev_BadAddressing_SplitsAtPageBoundary(t *testing.T) {
	ops := []i2ctest.IO{
		// cursor 127 is page 0, column 127: low nibble 0x0F, high nibble 0x07.
		{Addr: 0x3c, W: []byte{i2cCmd, 0xB0, 0x0F, 0x17}},
		{Addr: 0x3c, W: []byte{i2cData, 0x01}},
		// crossing into page 1, column 0.
		{Addr: 0x3c, W: []byte{i2cCmd, 0xB1, 0x00, 0x10}},
		{Addr: 0x3c, W: []byte{i2cData, 0x02, 0x03}},
	}
	d := newTestDev(t, ops)
	d.BadAddressing = true

	if err := d.SetCursor(127); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteBlock([]byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatal(err)
	}
	wantCursor := 127 + 3
	if d.cursor != wantCursor {
		t.Errorf("cursor = %d, want %d", d.cursor, wantCursor)
	}
}

func TestDev_SetCursorRejectsOutOfRange(t *testing.T) {
	d := newTestDev(t, nil)
	if err := d.SetCursor(codec.FrameSize + 1); err == nil {
		t.Fatal("expected error for out-of-range cursor")
	}
	if err := d.SetCursor(-1); err == nil {
		t.Fatal("expected error for negative cursor")
	}
}

func TestDev_WriteBeforeSetCursor(t *testing.T) {
	d := newTestDev(t, nil)
	if err := d.WriteBlock([]byte{0x00}); err == nil {
		t.Fatal("expected error writing before cursor is set")
	}
}
