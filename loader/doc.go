// SPDX-License-Identifier: EPL-2.0

// Package loader decodes sound files into mixer assets and keeps them under
// caller-chosen names.
//
// Every asset is converted to the device's audio.Spec at load time: decoded
// float samples are re-encoded in the output format, and mono/multichannel
// material is up- or down-mixed to the output channel count. Sample rates
// are never converted; a file at a different rate is rejected.
//
// The Library holds one reference on each asset. Remove and Close drop that
// reference; voices still playing keep the data alive until the mixer sweeps
// them.
package loader
