// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
	"time"
)

// Format tags the encoding of a single PCM sample as it is laid out in
// device buffers and decoded assets.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatU8
	FormatS8
	FormatS16LE
	FormatS32LE
	FormatF32LE
)

var formatNames = map[Format]string{
	FormatU8:    "u8",
	FormatS8:    "s8",
	FormatS16LE: "s16le",
	FormatS32LE: "s32le",
	FormatF32LE: "f32le",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// ParseFormat maps a name such as "s16le" to its Format. Matching is case
// insensitive.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
}

// BytesPerSample returns the size of one sample, or 0 for unknown formats.
func (f Format) BytesPerSample() int {
	switch f {
	case FormatU8, FormatS8:
		return 1
	case FormatS16LE:
		return 2
	case FormatS32LE, FormatF32LE:
		return 4
	default:
		return 0
	}
}

// Silence is the byte value that encodes a zero amplitude sample.
func (f Format) Silence() byte {
	if f == FormatU8 {
		return 0x80
	}
	return 0
}

// Spec describes the sample format negotiated with an output device. It is
// fixed when the device is opened.
type Spec struct {
	SampleRate int
	Channels   int
	Format     Format
	// Silence fills buffers when nothing is mixed.
	Silence byte
}

// DefaultSpec matches the usual desktop output: 48kHz stereo signed 16-bit.
func DefaultSpec() Spec {
	return Spec{
		SampleRate: 48000,
		Channels:   2,
		Format:     FormatS16LE,
		Silence:    0,
	}
}

func (s Spec) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", s.SampleRate, ErrInvalidSpec)
	}
	if s.Channels <= 0 {
		return fmt.Errorf("channels %d: %w", s.Channels, ErrInvalidSpec)
	}
	if s.Format.BytesPerSample() == 0 {
		return fmt.Errorf("%s: %w", s.Format, ErrUnsupportedFormat)
	}
	return nil
}

// FrameSize is the byte size of one interleaved frame.
func (s Spec) FrameSize() int { return s.Channels * s.Format.BytesPerSample() }

// BufferBytes returns the byte length of a buffer holding frames frames.
func (s Spec) BufferBytes(frames int) int { return frames * s.FrameSize() }

// Duration converts a byte length into playback time.
func (s Spec) Duration(n int) time.Duration {
	perSecond := s.SampleRate * s.FrameSize()
	if perSecond == 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(perSecond))
}

func (s Spec) String() string {
	return fmt.Sprintf("%dHz/%dch/%s", s.SampleRate, s.Channels, s.Format)
}
