package oto

import (
	"encoding/binary"
	"math"
)

// floatBufferToBytesLE appends the little-endian float32 encoding of buf to
// out, which the caller may pass with length zero to reuse its capacity.
func floatBufferToBytesLE(buf []float32, out []byte) []byte {
	for _, v := range buf {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}
