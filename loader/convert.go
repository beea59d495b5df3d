// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
)

// Convert drains src and returns its samples encoded in spec's format and
// channel layout. src is not closed.
func Convert(src audio.Source, spec audio.Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if src.SampleRate() != spec.SampleRate {
		return nil, fmt.Errorf("%d Hz, device %d Hz: %w", src.SampleRate(), spec.SampleRate, ErrSampleRateMismatch)
	}

	adapted, err := adaptChannels(src, spec.Channels)
	if err != nil {
		return nil, err
	}

	chunk := adapted.BufSize()
	if chunk <= 0 {
		chunk = 4096
	}
	chunk -= chunk % spec.Channels
	if chunk == 0 {
		chunk = spec.Channels
	}

	samples := make([]float32, chunk)
	encoded := make([]byte, chunk*spec.Format.BytesPerSample())
	var out []byte

	for {
		n, err := adapted.ReadSamples(samples)
		if n > 0 {
			w := audio.EncodeSamples(spec.Format, encoded, samples[:n])
			out = append(out, encoded[:w]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		if n == 0 {
			// Sources may return 0, nil; treat a stall as the end.
			break
		}
	}

	// Drop a trailing partial frame.
	frame := spec.FrameSize()
	return out[:len(out)-len(out)%frame], nil
}

func adaptChannels(src audio.Source, channels int) (audio.Source, error) {
	switch {
	case src.Channels() == channels:
		return src, nil
	case channels == 1:
		return audio.NewMonoMixer(src), nil
	case src.Channels() == 1:
		return audio.NewChannelExpander(src, channels), nil
	default:
		return nil, fmt.Errorf("%d channels to %d: %w", src.Channels(), channels, ErrChannelMismatch)
	}
}
