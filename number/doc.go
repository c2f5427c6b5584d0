// Package number implements the arbitrary-precision numeric values used by
// Micheline integer literals and their variable-length byte codec.
//
// Natural values are encoded as base-128 groups, least-significant group first,
// with the high bit of every byte but the last set as a continuation flag:
//
//	0        -> 00
//	127      -> 7f
//	128      -> 80 01
//
// Integer values use the same layout except that the first byte carries only six
// magnitude bits; bit 0x40 of the first byte is the sign flag:
//
//	-1       -> 41
//	64       -> 80 01
//	-64      -> c0 01
//
// Zero always encodes to the single byte 0x00. Decoding an empty buffer is an
// error, not zero. Consuming decoders read from a shared *cursor.Cursor and stop
// at the first byte whose continuation bit is clear, leaving any trailing bytes
// for the next decoder.
package number
