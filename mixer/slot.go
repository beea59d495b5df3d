// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ik5/audmix/audio"
)

// Slot holds the one active Registry for an output device together with the
// device's sample format and gate. Slot.Mix is the device callback.
type Slot struct {
	spec   audio.Spec
	gate   sync.Locker
	mix    audio.MixFunc
	active atomic.Pointer[Registry]
	stats  counters
	logger *slog.Logger
}

// NewSlot creates a slot for devices producing spec. gate is the device
// lock that serializes owner-side mutation against Mix. A nil logger uses
// slog.Default.
func NewSlot(spec audio.Spec, gate sync.Locker, logger *slog.Logger) (*Slot, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("mixer slot: %w", err)
	}
	if gate == nil {
		return nil, ErrNilGate
	}

	mix, err := audio.MixerFor(spec.Format)
	if err != nil {
		return nil, fmt.Errorf("mixer slot: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Slot{
		spec:   spec,
		gate:   gate,
		mix:    mix,
		logger: logger.With("component", "mixer"),
	}, nil
}

func (s *Slot) Spec() audio.Spec  { return s.spec }
func (s *Slot) Gate() sync.Locker { return s.gate }

// Current returns the active registry, or nil when none is bound.
func (s *Slot) Current() *Registry { return s.active.Load() }

// HasActive reports whether a registry is bound.
func (s *Slot) HasActive() bool { return s.active.Load() != nil }

// NewRegistry creates an unbound registry using the slot format's silence byte.
func (s *Slot) NewRegistry() *Registry { return NewRegistry(s, s.spec.Silence) }

func (s *Slot) bind(r *Registry) {
	s.gate.Lock()
	prev := s.active.Swap(r)
	s.gate.Unlock()

	if prev != r {
		s.logger.Debug("registry bound", slog.Bool("replaced", prev != nil))
	}
}

func (s *Slot) unbind(r *Registry) {
	s.gate.Lock()
	swapped := s.active.CompareAndSwap(r, nil)
	s.gate.Unlock()

	if swapped {
		s.logger.Debug("registry unbound")
	}
}

// Play creates a playback of a and queues it in the active registry, if
// there is one. Without an active registry the playback is returned
// unqueued.
func (s *Slot) Play(a *Asset, pos int, loop bool, state State) (*Playback, error) {
	if a == nil {
		return nil, ErrNilAsset
	}

	p := a.NewPlayback(pos, loop, state)
	if r := s.Current(); r != nil {
		if err := r.Push(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Mix fills out with the mix of every playing voice of the active
// registry. With no active registry out is filled with the format's silence byte.
//
// Mix is the device callback: the caller must hold the gate (or otherwise
// guarantee exclusion from owner-side mutation) and must not call Mix
// concurrently with itself.
func (s *Slot) Mix(out []byte) {
	s.stats.callbacks.Add(1)

	r := s.active.Load()
	if r == nil {
		s.stats.idle.Add(1)
		fill(out, s.spec.Silence)
		return
	}

	r.mix(out, s.mix, &s.stats)
}

// Stats is a snapshot of the slot counters.
type Stats struct {
	// Callbacks counts Mix calls.
	Callbacks uint64
	// Idle counts Mix calls made without an active registry.
	Idle uint64
	// Voices counts voice contributions of at least one byte.
	Voices uint64
	// Swept counts playbacks removed by the sweep.
	Swept uint64
	// Wraps counts loop wrap-arounds.
	Wraps uint64
}

func (s *Slot) Stats() Stats {
	return Stats{
		Callbacks: s.stats.callbacks.Load(),
		Idle:      s.stats.idle.Load(),
		Voices:    s.stats.voices.Load(),
		Swept:     s.stats.swept.Load(),
		Wraps:     s.stats.wraps.Load(),
	}
}

type counters struct {
	callbacks atomic.Uint64
	idle      atomic.Uint64
	voices    atomic.Uint64
	swept     atomic.Uint64
	wraps     atomic.Uint64
}
