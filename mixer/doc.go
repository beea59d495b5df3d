// SPDX-License-Identifier: EPL-2.0

// Package mixer is the real-time PCM mixing core.
//
// An Asset holds a fully decoded sample buffer. A Playback is a cursor over
// one Asset. Playbacks are pushed into a Registry, and at most one Registry
// per Slot is active at a time. The audio device calls Slot.Mix from its
// real-time thread whenever it needs another output buffer; Mix sums every
// playing voice of the active registry into that buffer.
//
// # Threads
//
// Two threads touch a registry. The owner thread (game loop, UI, CLI) pushes
// and clears playbacks and pauses or replays them. The device thread runs
// Slot.Mix. Every owner-side mutation goes through the Slot's gate, the
// lock that the device also holds around each Mix call. Mix never takes the
// gate itself, never blocks and never allocates.
//
//	gate := &sync.Mutex{}
//	slot, _ := mixer.NewSlot(audio.DefaultSpec(), gate, nil)
//	reg := slot.NewRegistry()
//	reg.Bind()
//
//	pb, _ := slot.Play(asset, 0, true, mixer.Playing)
//	pb.Pause()
//
//	// on the device thread, with gate held:
//	slot.Mix(out)
//
// # Voice lifecycle
//
// A voice that runs out of data either wraps to position 0 (looping) or is
// marked PendingRemoval. Marked voices stay in the registry until the sweep
// at the start of the next Mix call, so marking never reshapes the list
// while it is being walked. A looping voice that wraps does not continue
// from the start in the same call; the rest of that buffer stays silent for
// it.
package mixer
