// SPDX-License-Identifier: EPL-2.0

package mixer

import "sync/atomic"

// Asset is an immutable decoded PCM buffer shared by every Playback created
// from it. The sample layout must match the Slot's audio.Spec.
//
// The data lives as long as anything points at the asset, Playbacks
// included, and its length never changes. Refs counts declared owners:
// NewAsset hands one to the caller and a Registry holds one for every
// Playback it carries. Releasing the last one does not touch the data.
type Asset struct {
	data []byte
	refs atomic.Int32
}

// NewAsset wraps data without copying it. The caller must not modify data
// afterwards.
func NewAsset(data []byte) *Asset {
	a := &Asset{data: data}
	a.refs.Store(1)
	return a
}

// Data returns the sample bytes. They must not be modified.
func (a *Asset) Data() []byte {
	if a == nil {
		return nil
	}
	return a.data
}

// Duration is the length of the asset in bytes.
func (a *Asset) Duration() int { return len(a.Data()) }

// Refs reports the current reference count.
func (a *Asset) Refs() int {
	if a == nil {
		return 0
	}
	return int(a.refs.Load())
}

// Retain adds a reference.
func (a *Asset) Retain() *Asset {
	if a != nil {
		a.refs.Add(1)
	}
	return a
}

// Release drops a reference and reports whether it was the last one. The
// count never goes below zero. Release is safe on the mixing thread.
func (a *Asset) Release() bool {
	if a == nil {
		return false
	}
	for {
		n := a.refs.Load()
		if n <= 0 {
			return false
		}
		if a.refs.CompareAndSwap(n, n-1) {
			return n == 1
		}
	}
}

// NewPlayback creates a cursor over a starting at pos. pos is clamped to
// [0, Duration]. The playback is not queued anywhere; see Registry.Push and
// Slot.Play.
func (a *Asset) NewPlayback(pos int, loop bool, state State) *Playback {
	return &Playback{
		asset: a,
		pos:   min(max(pos, 0), a.Duration()),
		loop:  loop,
		state: state,
	}
}
