// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/audio"

// Registry is an ordered list of playbacks that are candidates for mixing.
// Only the registry bound to its Slot is heard; an unbound registry keeps
// its list untouched until it is bound again.
type Registry struct {
	slot    *Slot
	silence byte
	list    []*Playback
}

// NewRegistry creates an unbound registry on slot. silence is the byte used
// as the baseline of every buffer this registry mixes.
func NewRegistry(slot *Slot, silence byte) *Registry {
	return &Registry{
		slot:    slot,
		silence: silence,
	}
}

func (r *Registry) Silence() byte { return r.silence }

// Bind makes r the active registry of its slot, replacing the previous one.
// The previous registry keeps its playbacks.
func (r *Registry) Bind() { r.slot.bind(r) }

// Unbind clears the slot when r is the active registry and does nothing
// otherwise.
func (r *Registry) Unbind() { r.slot.unbind(r) }

// Active reports whether r is the registry currently bound to its slot.
func (r *Registry) Active() bool { return r.slot.Current() == r }

// Push appends p to the list under the gate. Pushing into an unbound
// registry is allowed; the voice stays silent until the registry is bound.
// A nil p is ignored.
//
// A playback lives in at most one registry at a time. Pushing it again,
// here or elsewhere, fails with ErrQueued until it has been swept or
// cleared out.
func (r *Registry) Push(p *Playback) error {
	if p == nil {
		return nil
	}
	if !p.owner.CompareAndSwap(nil, r) {
		return ErrQueued
	}

	r.slot.gate.Lock()
	defer r.slot.gate.Unlock()

	p.gate = r.slot.gate
	p.asset.Retain()
	r.list = append(r.list, p)
	return nil
}

// Clear drops every playback under the gate. Assets stay alive as long as
// something else references them.
func (r *Registry) Clear() {
	r.slot.gate.Lock()
	defer r.slot.gate.Unlock()

	r.drop()
}

// Close unbinds r if it is active and clears it.
func (r *Registry) Close() {
	r.Unbind()
	r.Clear()
}

// Len returns the number of playbacks in the list, including voices marked
// for removal that have not been swept yet.
func (r *Registry) Len() int {
	r.slot.gate.Lock()
	defer r.slot.gate.Unlock()

	return len(r.list)
}

// Playbacks returns a copy of the list.
func (r *Registry) Playbacks() []*Playback {
	r.slot.gate.Lock()
	defer r.slot.gate.Unlock()

	out := make([]*Playback, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Registry) drop() {
	for _, p := range r.list {
		p.owner.Store(nil)
		p.asset.Release()
	}
	clear(r.list)
	r.list = r.list[:0]
}

// sweep compacts the list in place, dropping PendingRemoval voices, and
// returns how many were removed.
func (r *Registry) sweep() int {
	kept := 0
	for _, p := range r.list {
		if p.state == PendingRemoval {
			p.owner.Store(nil)
			p.asset.Release()
			continue
		}
		r.list[kept] = p
		kept++
	}

	removed := len(r.list) - kept
	clear(r.list[kept:])
	r.list = r.list[:kept]
	return removed
}

func (r *Registry) mix(out []byte, mix audio.MixFunc, st *counters) {
	st.swept.Add(uint64(r.sweep()))

	fill(out, r.silence)

	for _, p := range r.list {
		if p.state != Playing {
			continue
		}
		n, wrapped := p.advance(out, mix)
		if n > 0 {
			st.voices.Add(1)
		}
		if wrapped {
			st.wraps.Add(1)
		}
	}
}

func fill(b []byte, v byte) {
	if v == 0 {
		clear(b)
		return
	}
	for i := range b {
		b[i] = v
	}
}
