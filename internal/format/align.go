package format

// RIFF word alignment. Every chunk and list body occupies an even number of
// bytes on the wire; the pad byte is never part of the declared size.
//
//	WordAlign(0) = 0
//	WordAlign(7) = 8
//	WordAlign(8) = 8

// WordAlign returns n rounded up to the next even number.
func WordAlign(n int) int {
	return (n + 1) &^ 1
}

// PadLen returns the number of pad bytes (0 or 1) that follow a body of n bytes.
func PadLen(n int) int {
	return n & 1
}

// EncodedLen returns the on-wire size of a chunk whose declared size is n:
// header, body and pad.
func EncodedLen(n int) int {
	return ChunkHeaderSize + WordAlign(n)
}
