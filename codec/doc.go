// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package codec implements a lossless codec for short, bitonal animations
// addressed to a 128x64 SSD1306-class OLED in page-mode byte order.
//
// A stream is a sequence of frames with no header or separator. Each frame
// is exactly 1024 bytes of display-order pixel data, encoded against the
// previous frame (the first frame is encoded against an implicit all-zero
// frame) using three primitives: skip unchanged bytes, copy changed bytes
// literally, and repeat a single byte value. See the package-level
// constants in commands.go for the exact wire format.
package codec
