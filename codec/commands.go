package codec

// Command opcodes, dispatched by their top two bits. See spec §6.1.
const (
	opSkipCopy = 0x00 // 00SSSCCC, opcode 0x00 itself is the big-skip escape
	opCopySkip = 0x40 // 01CCCSSS, opcode 0x40 itself is the big-copy escape
	opRepeat   = 0x80 // 1NNNNNNN, N+1 repeats of the following byte

	opMask = 0xc0

	bigSkip = 0x00 // escape: skip L+1 bytes, L = next byte
	bigCopy = 0x40 // escape: copy L+1 bytes, L = next byte, then payload

	maxShort  = 7   // max value of a 3-bit S or C field
	maxBig    = 256 // max bytes in one BigSkip/BigCopy
	maxRepeat = 128 // max bytes in one Repeat
	minRepeat = 3   // minimum intra-diff run length worth a Repeat command
)

// shortSkipCopy encodes the 00SSSCCC short form. s and c must each be in
// [0,7] and not both zero (that combination collides with the bigSkip
// escape opcode).
func shortSkipCopy(s, c int) byte {
	return byte(opSkipCopy | s<<3 | c)
}

// shortCopySkip encodes the 01CCCSSS short form. c and s must each be in
// [0,7] and not both zero (collides with the bigCopy escape opcode).
func shortCopySkip(c, s int) byte {
	return byte(opCopySkip | c<<3 | s)
}

// repeatOp encodes a Repeat(n) opcode for 1 <= n <= 128.
func repeatOp(n int) byte {
	return byte(opRepeat | (n - 1))
}
