// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample in [-1, 1] to signed 16-bit PCM.
// Out of range input is clamped.
func Float32ToInt16(x float32) int16 {
	// Use 32767 for positive max to avoid overflow
	return int16(ClampUnit(x) * 32767.0)
}

// Float32ToInt8 converts a normalized sample to signed 8-bit PCM.
func Float32ToInt8(x float32) int8 {
	return int8(ClampUnit(x) * 127.0)
}

// Float32ToUint8 converts a normalized sample to unsigned 8-bit PCM,
// where 128 is the zero line.
func Float32ToUint8(x float32) uint8 {
	return uint8(128 + int32(ClampUnit(x)*127.0))
}

// Float32ToInt32 converts a normalized sample to signed 32-bit PCM.
func Float32ToInt32(x float32) int32 {
	return int32(float64(ClampUnit(x)) * 2147483647.0)
}
