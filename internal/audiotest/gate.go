// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"
	"sync/atomic"
)

// Gate is a sync.Locker that records how often it was taken and whether it
// is currently held. It stands in for a device lock in tests.
type Gate struct {
	mu    sync.Mutex
	locks atomic.Int64
	held  atomic.Bool
}

func (g *Gate) Lock() {
	g.mu.Lock()
	g.held.Store(true)
	g.locks.Add(1)
}

func (g *Gate) Unlock() {
	g.held.Store(false)
	g.mu.Unlock()
}

// Locks returns the number of completed Lock calls.
func (g *Gate) Locks() int64 { return g.locks.Load() }

// Held reports whether the gate is locked right now.
func (g *Gate) Held() bool { return g.held.Load() }

// Ramp returns n bytes counting up from start, wrapping at 256.
func Ramp(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}
