// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
)

// TestMix_ConcurrentOwnerMutation runs a device goroutine that mixes under
// the gate while owner goroutines push, clear, rebind and control voices.
// Run with -race.
func TestMix_ConcurrentOwnerMutation(t *testing.T) {
	t.Parallel()

	gate := &sync.Mutex{}
	slot, err := NewSlot(s8Spec, gate, nil)
	if err != nil {
		t.Fatalf("NewSlot() error = %v", err)
	}
	reg := slot.NewRegistry()
	reg.Bind()

	assets := []*Asset{
		NewAsset(make([]byte, 3)),
		NewAsset(make([]byte, 64)),
		NewAsset(make([]byte, 500)),
		NewAsset(nil),
	}

	var (
		stop       atomic.Bool
		violations atomic.Int64
		device     sync.WaitGroup
		owners     sync.WaitGroup
	)

	// device thread
	device.Add(1)
	go func() {
		defer device.Done()
		out := make([]byte, 32)
		seen := make(map[*Playback]bool)
		for first := true; first || !stop.Load(); first = false {
			gate.Lock()
			live := 0
			for _, p := range reg.list {
				if p.state != PendingRemoval {
					live++
				}
			}
			active := slot.Current() == reg
			slot.Mix(out)
			if active && len(reg.list) != live {
				violations.Add(1)
			}
			clear(seen)
			for _, p := range reg.list {
				if p.pos < 0 || p.pos > p.asset.Duration() {
					violations.Add(1)
				}
				if seen[p] || p.owner.Load() != reg {
					violations.Add(1)
				}
				seen[p] = true
			}
			gate.Unlock()
		}
	}()

	for w := range 4 {
		owners.Add(1)
		go func(seed uint64) {
			defer owners.Done()
			rng := rand.New(rand.NewPCG(seed, seed*7+1))
			var mine []*Playback
			for range 2000 {
				switch rng.IntN(10) {
				case 0:
					reg.Clear()
					mine = mine[:0]
				case 1:
					if rng.IntN(2) == 0 {
						reg.Unbind()
					} else {
						reg.Bind()
					}
				case 2, 3:
					if len(mine) > 0 {
						p := mine[rng.IntN(len(mine))]
						switch rng.IntN(4) {
						case 0:
							p.Pause()
						case 1:
							p.Resume()
						case 2:
							p.Replay()
						default:
							// swept voices can come back; queued ones are refused
							p.Replay()
							if err := reg.Push(p); err != nil && err != ErrQueued {
								violations.Add(1)
							}
						}
					}
				default:
					a := assets[rng.IntN(len(assets))]
					p := a.NewPlayback(0, rng.IntN(3) == 0, Playing)
					reg.Push(p)
					mine = append(mine, p)
				}
			}
		}(uint64(w + 1))
	}

	owners.Wait()
	stop.Store(true)
	device.Wait()

	if v := violations.Load(); v != 0 {
		t.Errorf("observed %d inconsistent registry states", v)
	}
	if slot.Stats().Callbacks == 0 {
		t.Error("device goroutine never mixed")
	}
}
