package number

import (
	"math/big"

	"github.com/wippyai/michelson/cursor"
	"github.com/wippyai/michelson/errors"
)

const (
	continuationBit = 0x80
	groupMask       = 0x7f
	signBit         = 0x40
	firstGroupMask  = 0x3f
	groupBits       = 7
	firstGroupBits  = 6
)

var (
	bigGroupMask      = big.NewInt(groupMask)
	bigFirstGroupMask = big.NewInt(firstGroupMask)
)

// EncodeNatural encodes n as base-128 groups, least-significant first.
func EncodeNatural(n Natural) []byte {
	v := n.Big()
	if v.Sign() == 0 {
		return []byte{0x00}
	}
	return appendGroups(nil, v)
}

// appendGroups consumes v (which must be positive) and appends its 7-bit groups.
func appendGroups(dst []byte, v *big.Int) []byte {
	part := new(big.Int)
	for v.Sign() != 0 {
		part.And(v, bigGroupMask)
		v.Rsh(v, groupBits)
		b := byte(part.Uint64())
		if v.Sign() != 0 {
			b |= continuationBit
		}
		dst = append(dst, b)
	}
	return dst
}

// DecodeNatural decodes a Natural from data without modifying it.
// Bytes after the terminating group are ignored.
func DecodeNatural(data []byte) (Natural, error) {
	return DecodeNaturalConsuming(cursor.New(data))
}

// DecodeNaturalConsuming decodes a Natural from the front of c, consuming only
// the bytes that belong to it.
func DecodeNaturalConsuming(c *cursor.Cursor) (Natural, error) {
	if c.IsEmpty() {
		return Natural{}, errors.InvalidNaturalBytes()
	}
	return Natural{v: readGroups(c, new(big.Int), 0)}, nil
}

// readGroups accumulates 7-bit groups into acc starting at shift. It stops at the
// first byte without a continuation bit or when the cursor runs dry.
func readGroups(c *cursor.Cursor, acc *big.Int, shift uint) *big.Int {
	part := new(big.Int)
	for {
		b, ok := c.ConsumeAt(0)
		if !ok {
			return acc
		}
		part.SetUint64(uint64(b & groupMask))
		acc.Or(acc, part.Lsh(part, shift))
		if b&continuationBit == 0 {
			return acc
		}
		shift += groupBits
	}
}

// EncodeInteger encodes i with the sign flag in the first group.
func EncodeInteger(i Integer) []byte {
	v := i.Big()
	if v.Sign() == 0 {
		return []byte{0x00}
	}

	var first byte
	if v.Sign() < 0 {
		first = signBit
		v.Neg(v)
	}

	part := new(big.Int).And(v, bigFirstGroupMask)
	first |= byte(part.Uint64())
	v.Rsh(v, firstGroupBits)
	if v.Sign() == 0 {
		return []byte{first}
	}
	return appendGroups([]byte{first | continuationBit}, v)
}

// DecodeInteger decodes an Integer from data without modifying it.
func DecodeInteger(data []byte) (Integer, error) {
	return DecodeIntegerConsuming(cursor.New(data))
}

// DecodeIntegerConsuming decodes an Integer from the front of c.
func DecodeIntegerConsuming(c *cursor.Cursor) (Integer, error) {
	first, ok := c.ConsumeAt(0)
	if !ok {
		return Integer{}, errors.InvalidIntegerBytes()
	}

	acc := new(big.Int).SetUint64(uint64(first & firstGroupMask))
	if first&continuationBit != 0 {
		acc = readGroups(c, acc, firstGroupBits)
	}
	if first&signBit != 0 {
		acc.Neg(acc)
	}
	return Integer{v: acc}, nil
}
