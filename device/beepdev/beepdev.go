// SPDX-License-Identifier: EPL-2.0

// Package beepdev plays mixer output through the gopxl/beep speaker.
//
// The speaker is a process-wide singleton. It holds speaker.Lock while it
// streams, so that lock doubles as the mixer gate.
package beepdev

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
)

// speakerGate adapts speaker.Lock/Unlock to sync.Locker.
type speakerGate struct{}

func (speakerGate) Lock()   { speaker.Lock() }
func (speakerGate) Unlock() { speaker.Unlock() }

// Device is a beep speaker output. The callback renders into a byte buffer
// in the configured format, which is then decoded into beep's stereo float
// frames.
type Device struct {
	spec   audio.Spec
	frames int
	buf    []byte
	cb     device.Callback
	mu     sync.Mutex // Start/Close
	state  int
	logger *slog.Logger
}

const (
	stateOpen = iota
	stateStarted
	stateClosed
)

var (
	_ device.Device = (*Device)(nil)
	_ beep.Streamer = (*Device)(nil)
)

// Open initializes the speaker.
func Open(cfg device.Config, logger *slog.Logger) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	spec, _ := cfg.Spec()

	if spec.Channels > 2 {
		return nil, fmt.Errorf("beep: %d channels: %w", spec.Channels, device.ErrUnsupportedFormat)
	}

	if err := speaker.Init(beep.SampleRate(spec.SampleRate), cfg.Samples); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	d := newDevice(spec, cfg.Samples, logger)
	d.logger.Info("device opened", "spec", spec.String(), "buffer", cfg.BufferDuration())
	return d, nil
}

func newDevice(spec audio.Spec, frames int, logger *slog.Logger) *Device {
	return &Device{
		spec:   spec,
		frames: frames,
		buf:    make([]byte, spec.BufferBytes(frames)),
		logger: logger.With("component", "device", "backend", device.BackendBeep),
	}
}

// Name implements device.Device.
func (d *Device) Name() string { return string(device.BackendBeep) }

// Spec implements device.Device.
func (d *Device) Spec() audio.Spec { return d.spec }

// Gate implements device.Device.
func (d *Device) Gate() sync.Locker { return speakerGate{} }

// Start implements device.Device.
func (d *Device) Start(cb device.Callback) error {
	if cb == nil {
		return fmt.Errorf("nil callback: %w", device.ErrInvalidConfig)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case stateClosed:
		return device.ErrClosed
	case stateStarted:
		return device.ErrAlreadyStarted
	}
	d.cb = cb
	d.state = stateStarted

	speaker.Play(d)
	return nil
}

// Stream implements beep.Streamer. The speaker calls it with its lock held.
func (d *Device) Stream(samples [][2]float64) (int, bool) {
	if d.cb == nil {
		return 0, false
	}

	need := d.spec.BufferBytes(len(samples))
	if cap(d.buf) < need {
		d.buf = make([]byte, need)
	}
	buf := d.buf[:need]
	d.cb(buf)

	bps := d.spec.Format.BytesPerSample()
	frame := d.spec.FrameSize()
	for i := range samples {
		off := i * frame
		left := audio.DecodeSample(d.spec.Format, buf[off:])
		right := left
		if d.spec.Channels == 2 {
			right = audio.DecodeSample(d.spec.Format, buf[off+bps:])
		}
		samples[i] = [2]float64{left, right}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (d *Device) Err() error { return nil }

// Close implements device.Device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == stateClosed {
		return nil
	}

	speaker.Clear()
	speaker.Lock()
	d.cb = nil
	speaker.Unlock()

	d.state = stateClosed
	speaker.Close()
	d.logger.Info("device closed")
	return nil
}
