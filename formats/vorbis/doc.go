// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with jfreymuth/oggvorbis.
//
// The decoder keeps the stream's own channel count and sample rate and
// yields interleaved float32 samples in [-1, 1]. Reads are trimmed to whole
// frames, so a dst whose length is not a multiple of Channels() is only
// partially filled.
package vorbis
