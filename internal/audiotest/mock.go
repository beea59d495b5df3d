// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// Source is an in-memory audio.Source producing frames from a function of
// frame index and channel.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	fn       func(frame, channel int) float32

	// Closed is set by Close.
	Closed bool
}

// NewSource returns a Source of frames frames.
func NewSource(rate, channels, frames int, fn func(frame, channel int) float32) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, fn: fn}
}

// NewConstantSource returns a Source where every sample equals v.
func NewConstantSource(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// ReadSamples writes whole frames and returns io.EOF with the last of them.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.fn(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
