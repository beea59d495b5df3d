// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// State is the lifecycle state of a Playback.
type State uint8

const (
	// Playing voices are mixed and advance every callback.
	Playing State = iota
	// Paused voices are skipped without advancing.
	Paused
	// PendingRemoval is terminal: the voice ran out of data and is dropped
	// by the next sweep.
	PendingRemoval
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case PendingRemoval:
		return "pending-removal"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Playback is a mutable cursor over one Asset.
//
// Once pushed into a Registry the playback is shared with the mixing
// thread, and its methods take the registry's gate. Before that they touch
// the fields directly.
type Playback struct {
	asset *Asset
	pos   int
	loop  bool
	state State

	// set by Registry.Push
	gate sync.Locker
	// registry holding the playback, nil once swept or cleared
	owner atomic.Pointer[Registry]
}

func (p *Playback) guard() func() {
	if p.gate == nil {
		return func() {}
	}
	p.gate.Lock()
	return p.gate.Unlock
}

func (p *Playback) Asset() *Asset { return p.asset }

// Queued reports whether the playback currently sits in a registry.
func (p *Playback) Queued() bool { return p.owner.Load() != nil }

// Position is the byte offset of the next sample to mix.
func (p *Playback) Position() int {
	defer p.guard()()
	return p.pos
}

func (p *Playback) State() State {
	defer p.guard()()
	return p.state
}

func (p *Playback) Looping() bool {
	defer p.guard()()
	return p.loop
}

// SetLoop changes the loop flag. It takes effect the next time the voice
// runs out of data.
func (p *Playback) SetLoop(loop bool) {
	defer p.guard()()
	p.loop = loop
}

// Pause stops a playing voice without moving its position.
func (p *Playback) Pause() {
	defer p.guard()()
	if p.state == Playing {
		p.state = Paused
	}
}

// Resume continues a paused voice.
func (p *Playback) Resume() {
	defer p.guard()()
	if p.state == Paused {
		p.state = Playing
	}
}

// Replay rewinds to the start and forces the Playing state from any state.
// A PendingRemoval voice that has not been swept yet comes back to life;
// one that was already swept has to be pushed again.
func (p *Playback) Replay() {
	defer p.guard()()
	p.pos = 0
	p.state = Playing
}

// advance mixes the voice into out and applies the exhaustion transition.
// It reports the number of bytes mixed. Called on the mixing thread only.
func (p *Playback) advance(out []byte, mix func(dst, src []byte)) (n int, wrapped bool) {
	data := p.asset.Data()
	p.pos = min(max(p.pos, 0), len(data))

	remaining := len(data) - p.pos
	if remaining > 0 {
		n = min(remaining, len(out))
		mix(out[:n], data[p.pos:p.pos+n])
		p.pos += n
		remaining -= n
	}

	if remaining == 0 {
		if p.loop {
			p.pos = 0
			wrapped = true
		} else {
			p.state = PendingRemoval
		}
	}

	return n, wrapped
}
