// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample format model shared by decoders, the
// loader, the mixer and the output devices.
//
// # Formats
//
// A Spec is the format negotiated with an output device: sample rate,
// channel count, sample encoding and the silence byte. Every asset the
// mixer plays is stored in exactly that layout, so mixing is a per-byte
// operation with no conversion on the audio thread:
//
//	spec := audio.Spec{SampleRate: 48000, Channels: 2, Format: audio.FormatS16LE}
//	mix, err := audio.MixerFor(spec.Format)
//	mix(deviceBuf, assetBytes)
//
// The mix functions add at full volume and saturate at the limits of the
// format instead of wrapping. They never allocate.
//
// # Sources
//
// Decoders produce a Source of interleaved float32 samples in [-1, 1].
// MonoMixer and ChannelExpander adapt the channel layout of a Source, and
// EncodeSamples turns its samples into device bytes:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(src)
//	n, err := mono.ReadSamples(buf)
//	audio.EncodeSamples(spec.Format, out, buf[:n])
//
// ReadSamples returns io.EOF, possibly together with the final samples,
// when the stream is finished.
//
// # Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.ForPath("sounds/click.wav")
package audio
