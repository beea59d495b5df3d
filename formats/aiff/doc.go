// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is supported. go-audio needs an
// io.ReadSeeker, so other readers are buffered in memory before decoding.
package aiff
