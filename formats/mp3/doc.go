// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source returned by Decoder
// reports two channels regardless of the file. Samples are interleaved
// float32 in [-1, 1]:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, src.BufSize())
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	}
package mp3
