// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files through go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits per sample, any
// channel count and any sample rate. Samples come out as interleaved
// float32 in [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// first.
//
// # Encoding
//
// PCMWriter is an io.Writer that takes raw bytes in a mixer output format
// (u8, s8, s16le or s32le) and wraps them in a WAV container. It is what
// headless rendering writes into:
//
//	w, err := wav.NewPCMWriter(f, spec)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	_, err = w.Write(pcm)
//
// Close patches the RIFF and data chunk sizes, so the destination must be
// seekable.
package wav
