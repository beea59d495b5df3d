// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

func readAll(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			t.Fatal("source stalled")
		}
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestMonoMixer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		wave     func(frame, channel int) float32
		want     float32
	}{
		{"mono passthrough", 1, func(int, int) float32 { return 0.5 }, 0.5},
		{"stereo average", 2, func(_, c int) float32 { return 0.4 + 0.2*float32(c) }, 0.5},
		{"quad average", 4, func(_, c int) float32 { return float32(c) / 10 }, 0.15},
		{"opposite phases cancel", 2, func(_, c int) float32 { return 1 - 2*float32(c) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMonoMixer(newMockSource(8000, tt.channels, 100, tt.wave))
			if m.Channels() != 1 || m.SampleRate() != 8000 {
				t.Fatalf("reports %dHz/%dch", m.SampleRate(), m.Channels())
			}

			got := readAll(t, m, 7)
			if len(got) != 100 {
				t.Fatalf("read %d frames, want 100", len(got))
			}
			for i, v := range got {
				if !near(v, tt.want) {
					t.Fatalf("frame %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 2, 10, 0.1)
	m := NewMonoMixer(src)
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
	if err := m.Close(); err != nil || !src.closed {
		t.Errorf("Close() = %v, source closed = %v", err, src.closed)
	}
}

func TestChannelExpander(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 1, 5, func(f, _ int) float32 { return float32(f) / 10 })
	e := NewChannelExpander(src, 3)
	if e.Channels() != 3 {
		t.Fatalf("Channels() = %d, want 3", e.Channels())
	}

	got := readAll(t, e, 6)
	if len(got) != 15 {
		t.Fatalf("read %d samples, want 15", len(got))
	}
	for i, v := range got {
		if want := float32(i/3) / 10; !near(v, want) {
			t.Errorf("sample %d = %v, want %v", i, v, want)
		}
	}

	if err := e.Close(); err != nil || !src.closed {
		t.Errorf("Close() = %v, source closed = %v", err, src.closed)
	}
}

func TestChannelExpander_Edges(t *testing.T) {
	t.Parallel()

	e := NewChannelExpander(newConstantSource(8000, 1, 4, 0.2), 2)
	if _, err := e.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst err = %v, want ErrInvalidDstSize", err)
	}
	if n, err := e.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}

	// A stereo source is not expanded.
	stereo := NewChannelExpander(newConstantSource(8000, 2, 4, 0.2), 6)
	if stereo.Channels() != 2 {
		t.Errorf("stereo passthrough Channels() = %d", stereo.Channels())
	}
	if got := readAll(t, stereo, 4); len(got) != 8 {
		t.Errorf("stereo passthrough read %d samples, want 8", len(got))
	}
}

func TestConversions_ZeroAllocs(t *testing.T) {
	mono := NewMonoMixer(newConstantSource(8000, 2, 1<<30, 0.1))
	wide := NewChannelExpander(newConstantSource(8000, 1, 1<<30, 0.1), 2)
	dst := make([]float32, 1024)

	// warm the internal buffers
	mono.ReadSamples(dst)
	wide.ReadSamples(dst)

	allocs := testing.AllocsPerRun(100, func() {
		mono.ReadSamples(dst)
		wide.ReadSamples(dst)
	})
	if allocs != 0 {
		t.Errorf("%v allocs per read, want 0", allocs)
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	m := NewMonoMixer(newConstantSource(48000, 2, 1<<30, 0.1))
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		m.ReadSamples(dst)
	}
}
