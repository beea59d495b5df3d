// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audmix/utils"
)

// MixFunc adds src onto dst in place at full volume, saturating instead of
// wrapping when the sum leaves the sample range. Only whole samples present
// in both slices are touched. Implementations never allocate.
type MixFunc func(dst, src []byte)

// MixerFor returns the saturating mix primitive for f.
func MixerFor(f Format) (MixFunc, error) {
	switch f {
	case FormatU8:
		return MixU8, nil
	case FormatS8:
		return MixS8, nil
	case FormatS16LE:
		return MixS16LE, nil
	case FormatS32LE:
		return MixS32LE, nil
	case FormatF32LE:
		return MixF32LE, nil
	default:
		return nil, fmt.Errorf("mix %s: %w", f, ErrUnsupportedFormat)
	}
}

// MixU8 mixes unsigned 8-bit samples centred on 128.
func MixU8(dst, src []byte) {
	n := min(len(dst), len(src))
	for i := range n {
		// both operands are offset by 128
		dst[i] = utils.ClampUint8(int32(dst[i]) + int32(src[i]) - 128)
	}
}

// MixS8 mixes signed 8-bit samples.
func MixS8(dst, src []byte) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = byte(utils.ClampInt8(int32(int8(dst[i])) + int32(int8(src[i]))))
	}
}

// MixS16LE mixes signed 16-bit little-endian samples.
func MixS16LE(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 1
	for i := 0; i < n; i += 2 {
		a := int32(int16(binary.LittleEndian.Uint16(dst[i:])))
		b := int32(int16(binary.LittleEndian.Uint16(src[i:])))
		binary.LittleEndian.PutUint16(dst[i:], uint16(utils.ClampInt16(a+b)))
	}
}

// MixS32LE mixes signed 32-bit little-endian samples, summing in int64.
func MixS32LE(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		a := int64(int32(binary.LittleEndian.Uint32(dst[i:])))
		b := int64(int32(binary.LittleEndian.Uint32(src[i:])))
		binary.LittleEndian.PutUint32(dst[i:], uint32(utils.ClampInt32(a+b)))
	}
}

// MixF32LE mixes 32-bit float samples, clamped to [-1, 1].
func MixF32LE(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		a := math.Float32frombits(binary.LittleEndian.Uint32(dst[i:]))
		b := math.Float32frombits(binary.LittleEndian.Uint32(src[i:]))
		binary.LittleEndian.PutUint32(dst[i:], math.Float32bits(utils.ClampUnit(a+b)))
	}
}
