// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sync"

	"github.com/ik5/audmix/audio"
)

// Callback fills out with the next len(out) bytes of audio in the device's
// format. The device holds its gate for the duration of the call and never
// runs two callbacks at once.
type Callback func(out []byte)

// Device is an opened audio output.
type Device interface {
	// Name returns the backend name (e.g., "oto", "beep", "headless").
	Name() string

	// Spec returns the format granted when the device was opened.
	Spec() audio.Spec

	// Gate returns the lock the device holds around each Callback.
	Gate() sync.Locker

	// Start registers cb and begins pulling audio. It can be called once.
	Start(cb Callback) error

	// Close stops the device. After Close the device cannot be restarted.
	Close() error
}

var _ Device = (*Headless)(nil)
