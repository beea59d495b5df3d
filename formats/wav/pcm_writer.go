// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
)

// PCMWriter wraps raw PCM bytes in a WAV container. Writes may split
// frames; the remainder is carried to the next call.
type PCMWriter struct {
	enc     *wav.Encoder
	spec    audio.Spec
	bps     int
	frame   int
	buf     *goaudio.IntBuffer
	pending []byte
	written int64
	started bool
	closed  bool
}

// NewPCMWriter starts a WAV stream in the given format. F32LE output is not
// supported.
func NewPCMWriter(w io.WriteSeeker, spec audio.Spec) (*PCMWriter, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var bitDepth int
	switch spec.Format {
	case audio.FormatU8, audio.FormatS8:
		bitDepth = 8
	case audio.FormatS16LE:
		bitDepth = 16
	case audio.FormatS32LE:
		bitDepth = 32
	default:
		return nil, fmt.Errorf("wav writer: %s: %w", spec.Format, audio.ErrUnsupportedFormat)
	}

	return &PCMWriter{
		enc:     wav.NewEncoder(w, spec.SampleRate, bitDepth, spec.Channels, formatPCM),
		spec:    spec,
		bps:     spec.Format.BytesPerSample(),
		frame:   spec.FrameSize(),
		buf:     &goaudio.IntBuffer{Format: &goaudio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate}},
		pending: make([]byte, 0, spec.FrameSize()),
	}, nil
}

// Spec returns the format being written.
func (p *PCMWriter) Spec() audio.Spec { return p.spec }

// Written returns the number of PCM bytes accepted so far.
func (p *PCMWriter) Written() int64 { return p.written }

// Write implements io.Writer.
func (p *PCMWriter) Write(b []byte) (int, error) {
	if p.closed {
		return 0, ErrWriterClosed
	}
	total := len(b)

	if len(p.pending) > 0 {
		need := p.frame - len(p.pending)
		if len(b) < need {
			p.pending = append(p.pending, b...)
			p.written += int64(total)
			return total, nil
		}
		p.pending = append(p.pending, b[:need]...)
		if err := p.encode(p.pending); err != nil {
			return 0, err
		}
		p.pending = p.pending[:0]
		b = b[need:]
	}

	whole := len(b) - len(b)%p.frame
	if whole > 0 {
		if err := p.encode(b[:whole]); err != nil {
			return total - len(b), err
		}
	}
	p.pending = append(p.pending, b[whole:]...)
	p.written += int64(total)
	return total, nil
}

func (p *PCMWriter) encode(b []byte) error {
	n := len(b) / p.bps
	if cap(p.buf.Data) < n {
		p.buf.Data = make([]int, n)
	}
	p.buf.Data = p.buf.Data[:n]

	// go-audio writes 8-bit samples as unsigned.
	switch p.spec.Format {
	case audio.FormatU8:
		for i := range n {
			p.buf.Data[i] = int(b[i])
		}
	case audio.FormatS8:
		for i := range n {
			p.buf.Data[i] = int(int8(b[i])) + 128
		}
	case audio.FormatS16LE:
		for i := range n {
			p.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(b[2*i:])))
		}
	case audio.FormatS32LE:
		for i := range n {
			p.buf.Data[i] = int(int32(binary.LittleEndian.Uint32(b[4*i:])))
		}
	}

	if err := p.enc.Write(p.buf); err != nil {
		return fmt.Errorf("wav writer: %w", err)
	}
	p.started = true
	return nil
}

// Close finalizes the headers. A trailing partial frame is dropped. The
// underlying writer is not closed.
func (p *PCMWriter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.pending = p.pending[:0]

	if !p.started {
		// Emit the headers for an empty stream.
		if err := p.encode(nil); err != nil {
			return err
		}
	}
	if err := p.enc.Close(); err != nil {
		return fmt.Errorf("wav writer: %w", err)
	}
	return nil
}
