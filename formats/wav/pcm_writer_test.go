// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/audio"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func rewind(t *testing.T, f *os.File) []byte {
	t.Helper()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestPCMWriter_Header(t *testing.T) {
	t.Parallel()

	f := tempFile(t)
	spec := audio.Spec{SampleRate: 44100, Channels: 2, Format: audio.FormatS16LE}
	w, err := NewPCMWriter(f, spec)
	if err != nil {
		t.Fatalf("NewPCMWriter() error = %v", err)
	}
	if _, err := w.Write(pcm16(1, 2, 3, 4)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := rewind(t, f)
	if len(data) != 44+8 {
		t.Fatalf("file is %d bytes, want 52", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Fatalf("bad chunk ids: %q", data[:40])
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(data[4:8]), 44},
		{"format tag", uint32(binary.LittleEndian.Uint16(data[20:22])), 1},
		{"channels", uint32(binary.LittleEndian.Uint16(data[22:24])), 2},
		{"sample rate", binary.LittleEndian.Uint32(data[24:28]), 44100},
		{"byte rate", binary.LittleEndian.Uint32(data[28:32]), 44100 * 4},
		{"block align", uint32(binary.LittleEndian.Uint16(data[32:34])), 4},
		{"bits", uint32(binary.LittleEndian.Uint16(data[34:36])), 16},
		{"data size", binary.LittleEndian.Uint32(data[40:44]), 8},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if !bytes.Equal(data[44:], pcm16(1, 2, 3, 4)) {
		t.Errorf("payload = %v", data[44:])
	}
}

func TestPCMWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format audio.Format
		pcm    []byte
	}{
		{"u8", audio.FormatU8, []byte{0x80, 0xC0, 0x40, 0xFF}},
		{"s8", audio.FormatS8, []byte{0, 64, 0xC0, 0x7F}},
		{"s16le", audio.FormatS16LE, pcm16(0, 16384, -16384, 32767)},
		{"s32le", audio.FormatS32LE, []byte{0, 0, 0, 0, 0, 0, 0, 0x40, 0, 0, 0, 0xC0, 0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := tempFile(t)
			spec := audio.Spec{SampleRate: 8000, Channels: 1, Format: tt.format}
			w, err := NewPCMWriter(f, spec)
			if err != nil {
				t.Fatalf("NewPCMWriter() error = %v", err)
			}
			if _, err := w.Write(tt.pcm); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			got, rate, ch := readAll(t, rewind(t, f))
			if rate != 8000 || ch != 1 {
				t.Fatalf("got %d Hz / %d ch", rate, ch)
			}
			bps := tt.format.BytesPerSample()
			if len(got) != len(tt.pcm)/bps {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.pcm)/bps)
			}
			for i := range got {
				want := float32(audio.DecodeSample(tt.format, tt.pcm[i*bps:]))
				if !near(got[i], want) {
					t.Errorf("sample %d = %f, want %f", i, got[i], want)
				}
			}
		})
	}
}

func TestPCMWriter_SplitFrames(t *testing.T) {
	t.Parallel()

	f := tempFile(t)
	w, err := NewPCMWriter(f, audio.Spec{SampleRate: 8000, Channels: 2, Format: audio.FormatS16LE})
	if err != nil {
		t.Fatal(err)
	}

	payload := pcm16(1, 2, 3, 4, 5, 6)
	for _, chunk := range [][]byte{payload[:1], payload[1:3], payload[3:9], payload[9:]} {
		n, err := w.Write(chunk)
		if err != nil || n != len(chunk) {
			t.Fatalf("Write(%d bytes) = %d, %v", len(chunk), n, err)
		}
	}
	// A dangling half frame is dropped on Close.
	if _, err := w.Write([]byte{9}); err != nil {
		t.Fatal(err)
	}
	if w.Written() != int64(len(payload)+1) {
		t.Errorf("Written() = %d", w.Written())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data := rewind(t, f)
	if !bytes.Equal(data[44:], payload) {
		t.Errorf("payload = %v, want %v", data[44:], payload)
	}
}

func TestPCMWriter_Empty(t *testing.T) {
	t.Parallel()

	f := tempFile(t)
	w, err := NewPCMWriter(f, audio.DefaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if _, err := w.Write([]byte{0}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write after Close error = %v, want ErrWriterClosed", err)
	}

	data := rewind(t, f)
	if len(data) != 44 {
		t.Fatalf("empty file is %d bytes, want 44", len(data))
	}
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("empty file does not decode: %v", err)
	}
}

func TestNewPCMWriter_Errors(t *testing.T) {
	t.Parallel()

	f := tempFile(t)
	if _, err := NewPCMWriter(f, audio.Spec{SampleRate: 8000, Channels: 1, Format: audio.FormatF32LE}); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("f32le: err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := NewPCMWriter(f, audio.Spec{SampleRate: 0, Channels: 1, Format: audio.FormatS16LE}); !errors.Is(err, audio.ErrInvalidSpec) {
		t.Errorf("zero rate: err = %v, want ErrInvalidSpec", err)
	}
}

func BenchmarkPCMWriter_Write(b *testing.B) {
	f, err := os.Create(filepath.Join(b.TempDir(), "bench.wav"))
	if err != nil {
		b.Fatal(err)
	}
	defer f.Close()

	w, err := NewPCMWriter(f, audio.DefaultSpec())
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close()

	buf := make([]byte, audio.DefaultSpec().BufferBytes(4096))
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := w.Write(buf); err != nil {
			b.Fatal(err)
		}
	}
}
