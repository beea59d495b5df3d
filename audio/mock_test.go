// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockSource generates frames from a waveform function.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	closed     bool
	wave       func(frame, channel int) float32
}

func newMockSource(sampleRate, channels, frames int, wave func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func newConstantSource(sampleRate, channels, frames int, v float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return v })
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
