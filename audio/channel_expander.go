// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelExpander up-mixes a mono Source by copying every sample to each of
// the output channels.
type ChannelExpander struct {
	src      Source
	channels int
	tmp      []float32
}

// NewChannelExpander wraps a mono src so it reports channels channels.
// A src that is not mono is passed through unchanged.
func NewChannelExpander(src Source, channels int) *ChannelExpander {
	return &ChannelExpander{
		src:      src,
		channels: max(channels, 1),
		tmp:      make([]float32, 4096),
	}
}

func (e *ChannelExpander) SampleRate() int { return e.src.SampleRate() }
func (e *ChannelExpander) BufSize() int    { return e.src.BufSize() }

func (e *ChannelExpander) Channels() int {
	if e.src.Channels() != 1 {
		return e.src.Channels()
	}
	return e.channels
}

func (e *ChannelExpander) Close() error {
	if err := e.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with whole frames; len(dst) must be a multiple of
// the output channel count.
func (e *ChannelExpander) ReadSamples(dst []float32) (int, error) {
	if e.src.Channels() != 1 || e.channels == 1 {
		return e.src.ReadSamples(dst)
	}
	if len(dst)%e.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / e.channels
	if frames == 0 {
		return 0, nil
	}
	if cap(e.tmp) < frames {
		e.tmp = make([]float32, frames)
	}
	e.tmp = e.tmp[:frames]

	n, err := e.src.ReadSamples(e.tmp)
	for f := range n {
		base := f * e.channels
		for c := range e.channels {
			dst[base+c] = e.tmp[f]
		}
	}

	return n * e.channels, err
}
