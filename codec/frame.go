package codec

// FrameSize is the number of bytes in one display-order frame: 8 pages of
// 128 columns each.
const FrameSize = 1024

// Width and Height are the fixed display dimensions this codec supports.
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8
)

// Frame is one display-order byte buffer: page p, column x lives at offset
// p*Width + x. Bit 0 of a byte is the top pixel of its page, bit 7 the
// bottom.
type Frame [FrameSize]byte

// offset returns the display-order offset for page p, column x.
func offset(p, x int) int {
	return p*Width + x
}

// PageColumn splits a display-order offset back into its page and column.
func PageColumn(o int) (page, col int) {
	return o >> 7, o & 0x7f
}
