// SPDX-License-Identifier: EPL-2.0

package mixer

import "testing"

func TestPlayback_PauseResume(t *testing.T) {
	t.Parallel()

	p := NewAsset(make([]byte, 4)).NewPlayback(0, false, Playing)

	p.Pause()
	if p.State() != Paused {
		t.Fatalf("State() = %v after Pause, want paused", p.State())
	}

	p.Resume()
	if p.State() != Playing {
		t.Fatalf("State() = %v after Resume, want playing", p.State())
	}
}

func TestPlayback_PendingRemovalIsTerminal(t *testing.T) {
	t.Parallel()

	p := NewAsset(make([]byte, 4)).NewPlayback(0, false, PendingRemoval)

	p.Pause()
	p.Resume()
	if p.State() != PendingRemoval {
		t.Errorf("State() = %v, want pending-removal", p.State())
	}
}

func TestPlayback_ReplayFromAnyState(t *testing.T) {
	t.Parallel()

	for _, st := range []State{Playing, Paused, PendingRemoval} {
		t.Run(st.String(), func(t *testing.T) {
			t.Parallel()

			p := NewAsset(make([]byte, 10)).NewPlayback(7, true, st)
			p.Replay()

			if p.Position() != 0 {
				t.Errorf("Position() = %d, want 0", p.Position())
			}
			if p.State() != Playing {
				t.Errorf("State() = %v, want playing", p.State())
			}
			if !p.Looping() {
				t.Error("Replay() changed the loop flag")
			}
		})
	}
}

func TestPlayback_AdvanceNonLooping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		duration  int
		pos       int
		outLen    int
		wantN     int
		wantPos   int
		wantState State
	}{
		{name: "fits in buffer", duration: 10, pos: 0, outLen: 16, wantN: 10, wantPos: 10, wantState: PendingRemoval},
		{name: "larger than buffer", duration: 100, pos: 0, outLen: 16, wantN: 16, wantPos: 16, wantState: Playing},
		{name: "tail", duration: 10, pos: 8, outLen: 16, wantN: 2, wantPos: 10, wantState: PendingRemoval},
		{name: "exact fit", duration: 16, pos: 0, outLen: 16, wantN: 16, wantPos: 16, wantState: PendingRemoval},
		{name: "already exhausted", duration: 10, pos: 10, outLen: 16, wantN: 0, wantPos: 10, wantState: PendingRemoval},
		{name: "empty asset", duration: 0, pos: 0, outLen: 16, wantN: 0, wantPos: 0, wantState: PendingRemoval},
		{name: "empty output", duration: 10, pos: 2, outLen: 0, wantN: 0, wantPos: 2, wantState: Playing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewAsset(make([]byte, tt.duration)).NewPlayback(tt.pos, false, Playing)
			out := make([]byte, tt.outLen)

			n, wrapped := p.advance(out, func(dst, src []byte) {
				if len(dst) != len(src) {
					t.Errorf("mix called with len(dst)=%d len(src)=%d", len(dst), len(src))
				}
			})

			if n != tt.wantN {
				t.Errorf("advance() n = %d, want %d", n, tt.wantN)
			}
			if wrapped {
				t.Error("advance() wrapped a non-looping voice")
			}
			if p.pos != tt.wantPos {
				t.Errorf("pos = %d, want %d", p.pos, tt.wantPos)
			}
			if p.state != tt.wantState {
				t.Errorf("state = %v, want %v", p.state, tt.wantState)
			}
		})
	}
}

func TestPlayback_AdvanceLoopingWraps(t *testing.T) {
	t.Parallel()

	p := NewAsset(make([]byte, 10)).NewPlayback(6, true, Playing)
	out := make([]byte, 8)

	calls := 0
	n, wrapped := p.advance(out, func(dst, src []byte) { calls++ })

	if n != 4 {
		t.Errorf("advance() n = %d, want 4", n)
	}
	if !wrapped {
		t.Error("advance() did not report the wrap")
	}
	if calls != 1 {
		t.Errorf("mix called %d times, want 1 (no same-call wrap)", calls)
	}
	if p.pos != 0 || p.state != Playing {
		t.Errorf("pos=%d state=%v, want pos=0 state=playing", p.pos, p.state)
	}
}
