// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package animator is a container for the packages that make up a lossless
// codec for short, bitonal, fixed-resolution OLED animations and the tools
// that compress and play them.
//
// See codec for the wire format and the Rasterizer/Encoder/Decoder, player
// for fixed-fps playback, imagesource for turning an animated GIF into
// frames the Rasterizer accepts, ssd1306 for the I2C display adapter, and
// cmd/tcomp and cmd/oledplay for the command-line tools built on top of
// those packages.
package animator
