// SPDX-License-Identifier: EPL-2.0

// Package audmix is a real-time PCM mixing engine.
//
// An Engine ties together an output device, a mixer.Slot that the device
// calls for every buffer, a default mixer.Registry of voices, and a
// loader.Library of decoded sounds:
//
//	eng, err := audmix.Open(device.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if _, err := eng.Load("music", "music.ogg"); err != nil {
//	    return err
//	}
//	voice, err := eng.Play("music", true)
//
// Voices are mixed with saturating addition in the device's sample format.
// Assets are decoded and converted to that format once, at load time, so
// the device callback only copies and adds bytes.
//
// # Packages
//
//   - mixer: assets, voices, registries and the Slot callback.
//   - audio: sample formats, saturating mixers, decoded sources.
//   - device: the device contract and a headless backend;
//     device/otodev and device/beepdev drive real sound cards.
//   - loader: named asset library over the formats/* decoders.
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders;
//     wav also writes rendered output.
//   - config: YAML/env/flag configuration.
//
// Building with the headless tag drops the sound-card backends and their
// cgo dependencies.
package audmix
