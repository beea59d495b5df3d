// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audmix/utils"
)

// EncodeSamples writes normalized float32 samples into dst using format f and
// returns the number of bytes written. dst must hold
// len(src)*f.BytesPerSample() bytes; extra samples are dropped.
func EncodeSamples(f Format, dst []byte, src []float32) int {
	bps := f.BytesPerSample()
	if bps == 0 {
		return 0
	}
	n := min(len(src), len(dst)/bps)

	switch f {
	case FormatU8:
		for i := range n {
			dst[i] = utils.Float32ToUint8(src[i])
		}
	case FormatS8:
		for i := range n {
			dst[i] = byte(utils.Float32ToInt8(src[i]))
		}
	case FormatS16LE:
		for i := range n {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(utils.Float32ToInt16(src[i])))
		}
	case FormatS32LE:
		for i := range n {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(utils.Float32ToInt32(src[i])))
		}
	case FormatF32LE:
		for i := range n {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(utils.ClampUnit(src[i])))
		}
	}

	return n * bps
}

// DecodeSample reads the first sample of b as a normalized value in [-1, 1].
// It returns 0 when b is shorter than one sample.
func DecodeSample(f Format, b []byte) float64 {
	if len(b) < f.BytesPerSample() {
		return 0
	}

	switch f {
	case FormatU8:
		return (float64(b[0]) - 128) / 128
	case FormatS8:
		return float64(int8(b[0])) / 128
	case FormatS16LE:
		return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
	case FormatS32LE:
		return float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648
	case FormatF32LE:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return 0
	}
}

// IntToFloat normalizes a signed integer sample of the given bit depth into
// [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat(v, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128
	case 24:
		return float32(v) / 8388608
	case 32:
		return float32(float64(v) / 2147483648)
	default:
		return float32(v) / 32768
	}
}
