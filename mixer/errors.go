// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrNilAsset = errors.New("nil asset")
	ErrNilGate  = errors.New("nil gate")
	// ErrQueued is returned when pushing a playback that already sits in a
	// registry.
	ErrQueued = errors.New("playback already queued")
)
