// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
	"testing"
)

type stubDecoder struct{ name string }

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return newConstantSource(44100, 2, 16, 0), nil
}

func TestRegistry_KeysAreNormalized(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	r.Register(".WAV", wav)

	for _, key := range []string{"wav", "WAV", ".wav", ".Wav"} {
		got, ok := r.Get(key)
		if !ok || got != wav {
			t.Errorf("Get(%q) = %v, %v", key, got, ok)
		}
	}
	if _, ok := r.Get("mp3"); ok {
		t.Error("Get(mp3) found a decoder that was never registered")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ogg := &stubDecoder{name: "ogg"}
	r.Register("ogg", ogg)

	tests := []struct {
		path string
		ok   bool
	}{
		{"sounds/music.ogg", true},
		{"MUSIC.OGG", true},
		{"archive.tar.ogg", true},
		{"noext", false},
		{"clip.flac", false},
	}
	for _, tt := range tests {
		got, ok := r.ForPath(tt.path)
		if ok != tt.ok || (ok && got != ogg) {
			t.Errorf("ForPath(%q) = %v, %v; want ok=%v", tt.path, got, ok, tt.ok)
		}
	}
}

func TestRegistry_OverwriteAndFormats(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first, second := &stubDecoder{name: "first"}, &stubDecoder{name: "second"}
	r.Register("wav", first)
	r.Register("mp3", first)
	r.Register("wav", second)

	if got, _ := r.Get("wav"); got != second {
		t.Error("later Register did not replace the decoder")
	}
	if got := r.Formats(); !slices.Equal(got, []string{"mp3", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	d := &stubDecoder{}

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				r.Register("wav", d)
				r.Get("wav")
				r.Formats()
			}
		})
	}
	wg.Wait()

	if _, ok := r.Get("wav"); !ok {
		t.Error("decoder lost after concurrent use")
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry()
	r.Register("wav", &stubDecoder{})

	b.ReportAllocs()
	for b.Loop() {
		r.Get("wav")
	}
}
