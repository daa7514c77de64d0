package codec

import (
	"fmt"
	"io"
)

// Decoder reads a compressed command stream and drives a display adapter.
// It carries no state across frames other than a transient cursor reset to
// 0 at the start of each DecodeFrame call.
type Decoder struct {
	disp    Display
	scratch [maxBig]byte // reused across Copy and Repeat commands
}

// Display is the two-operation contract a decoder needs from whatever is
// rendering the decoded frames. Skips translate to SetCursor; copies and
// repeats translate to WriteBlock.
type Display interface {
	// SetCursor positions the next write at display-order offset.
	SetCursor(offset int) error
	// WriteBlock writes p starting at the current cursor, advancing it by
	// len(p).
	WriteBlock(p []byte) error
}

// NewDecoder returns a Decoder that emits to disp.
func NewDecoder(disp Display) *Decoder {
	return &Decoder{disp: disp}
}

// DecodeFrame reads exactly one frame's worth of commands from r (cursor
// 0..1024) and emits them to the Display. It returns ErrMalformed if the
// cursor overshoots 1024 or the stream ends mid-command, and ErrAdapterIO
// if the Display rejects a call; in both cases the frame is incomplete and
// should be discarded by the caller.
func (d *Decoder) DecodeFrame(r io.ByteReader) error {
	cursor := 0
	if err := d.disp.SetCursor(0); err != nil {
		return fmt.Errorf("codec: set cursor: %w: %v", ErrAdapterIO, err)
	}
	for cursor < FrameSize {
		op, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("codec: read opcode at cursor %d: %w", cursor, ErrMalformed)
		}
		switch op & opMask {
		case opSkipCopy:
			if op == bigSkip {
				l, err := r.ReadByte()
				if err != nil {
					return fmt.Errorf("codec: read big-skip length: %w", ErrMalformed)
				}
				cursor, err = advanceCursor(cursor, int(l)+1)
				if err != nil {
					return err
				}
				if err := d.disp.SetCursor(cursor); err != nil {
					return fmt.Errorf("codec: set cursor: %w: %v", ErrAdapterIO, err)
				}
				continue
			}
			s := int(op>>3) & 7
			c := int(op) & 7
			if s > 0 {
				var err error
				cursor, err = advanceCursor(cursor, s)
				if err != nil {
					return err
				}
				if err := d.disp.SetCursor(cursor); err != nil {
					return fmt.Errorf("codec: set cursor: %w: %v", ErrAdapterIO, err)
				}
			}
			if c > 0 {
				buf, err := d.readN(r, c)
				if err != nil {
					return err
				}
				if err := d.disp.WriteBlock(buf); err != nil {
					return fmt.Errorf("codec: write block: %w: %v", ErrAdapterIO, err)
				}
				cursor, err = advanceCursor(cursor, c)
				if err != nil {
					return err
				}
			}

		case opCopySkip:
			if op == bigCopy {
				l, err := r.ReadByte()
				if err != nil {
					return fmt.Errorf("codec: read big-copy length: %w", ErrMalformed)
				}
				n := int(l) + 1
				buf, err := d.readN(r, n)
				if err != nil {
					return err
				}
				if err := d.disp.WriteBlock(buf); err != nil {
					return fmt.Errorf("codec: write block: %w: %v", ErrAdapterIO, err)
				}
				cursor, err = advanceCursor(cursor, n)
				if err != nil {
					return err
				}
				continue
			}
			c := int(op>>3) & 7
			s := int(op) & 7
			if c > 0 {
				buf, err := d.readN(r, c)
				if err != nil {
					return err
				}
				if err := d.disp.WriteBlock(buf); err != nil {
					return fmt.Errorf("codec: write block: %w: %v", ErrAdapterIO, err)
				}
				var aerr error
				cursor, aerr = advanceCursor(cursor, c)
				if aerr != nil {
					return aerr
				}
			}
			if s > 0 {
				var err error
				cursor, err = advanceCursor(cursor, s)
				if err != nil {
					return err
				}
				if err := d.disp.SetCursor(cursor); err != nil {
					return fmt.Errorf("codec: set cursor: %w: %v", ErrAdapterIO, err)
				}
			}

		default: // opRepeat: high bit set, both 0x80 and 0xc0 fall here
			n := int(op&0x7f) + 1
			b, err := r.ReadByte()
			if err != nil {
				return fmt.Errorf("codec: read repeat byte: %w", ErrMalformed)
			}
			buf := d.scratch[:n]
			for i := range buf {
				buf[i] = b
			}
			if err := d.disp.WriteBlock(buf); err != nil {
				return fmt.Errorf("codec: write block: %w: %v", ErrAdapterIO, err)
			}
			cursor, err = advanceCursor(cursor, n)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// advanceCursor advances cursor by n, rejecting any move that would
// overshoot the 1024-byte frame.
func advanceCursor(cursor, n int) (int, error) {
	next := cursor + n
	if next > FrameSize {
		return cursor, fmt.Errorf("codec: cursor %d+%d overshoots frame: %w", cursor, n, ErrMalformed)
	}
	return next, nil
}

// readN reads exactly n bytes from r.
func (d *Decoder) readN(r io.ByteReader, n int) ([]byte, error) {
	buf := d.scratch[:n]
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("codec: read payload byte %d/%d: %w", i, n, ErrMalformed)
		}
		buf[i] = b
	}
	return buf, nil
}
