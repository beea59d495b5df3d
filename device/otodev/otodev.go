// SPDX-License-Identifier: EPL-2.0

// Package otodev plays mixer output through ebitengine/oto.
//
// oto allows a single context per process, so only one Device can be open
// at a time.
package otodev

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
)

// Device is an oto-backed output. oto pulls audio from Read on its own
// goroutine; each pull holds the gate and runs the callback.
type Device struct {
	ctx    *oto.Context
	player *oto.Player
	spec   audio.Spec
	bufLen int
	gate   sync.Mutex
	cb     device.Callback
	mu     sync.Mutex // Start/Close
	closed bool
	logger *slog.Logger
}

var _ device.Device = (*Device)(nil)

// otoFormat maps a sample encoding to the oto constant. oto has no 8-bit
// signed or 32-bit integer output.
func otoFormat(f audio.Format) (oto.Format, error) {
	switch f {
	case audio.FormatU8:
		return oto.FormatUnsignedInt8, nil
	case audio.FormatS16LE:
		return oto.FormatSignedInt16LE, nil
	case audio.FormatF32LE:
		return oto.FormatFloat32LE, nil
	default:
		return 0, fmt.Errorf("oto: %s: %w", f, device.ErrUnsupportedFormat)
	}
}

// Open creates the oto context and waits until the driver is ready.
func Open(cfg device.Config, logger *slog.Logger) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	spec, _ := cfg.Spec()
	if spec.Channels > 2 {
		return nil, fmt.Errorf("oto: %d channels: %w", spec.Channels, device.ErrUnsupportedFormat)
	}

	format, err := otoFormat(spec.Format)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   spec.SampleRate,
		ChannelCount: spec.Channels,
		Format:       format,
		BufferSize:   cfg.BufferDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("oto: new context: %w", err)
	}
	<-ready

	d := &Device{
		ctx:    ctx,
		spec:   spec,
		bufLen: spec.BufferBytes(cfg.Samples),
		logger: logger.With("component", "device", "backend", device.BackendOto),
	}
	d.logger.Info("device opened", "spec", spec.String(), "buffer", cfg.BufferDuration())
	return d, nil
}

// Name implements device.Device.
func (d *Device) Name() string { return string(device.BackendOto) }

// Spec implements device.Device.
func (d *Device) Spec() audio.Spec { return d.spec }

// Gate implements device.Device.
func (d *Device) Gate() sync.Locker { return &d.gate }

// Read is called by the oto player. It always fills p.
func (d *Device) Read(p []byte) (int, error) {
	d.gate.Lock()
	if d.cb != nil {
		d.cb(p)
	} else {
		for i := range p {
			p[i] = d.spec.Silence
		}
	}
	d.gate.Unlock()
	return len(p), nil
}

// Start implements device.Device.
func (d *Device) Start(cb device.Callback) error {
	if cb == nil {
		return fmt.Errorf("nil callback: %w", device.ErrInvalidConfig)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.closed:
		return device.ErrClosed
	case d.player != nil:
		return device.ErrAlreadyStarted
	}

	d.gate.Lock()
	d.cb = cb
	d.gate.Unlock()

	d.player = d.ctx.NewPlayer(d)
	d.player.SetBufferSize(d.bufLen)
	d.player.Play()
	return nil
}

// Err reports an asynchronous driver error, if any.
func (d *Device) Err() error {
	if err := d.ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return d.player.Err()
	}
	return nil
}

// Close implements device.Device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var err error
	if d.player != nil {
		d.player.Pause()
		err = d.player.Close()
	}
	if serr := d.ctx.Suspend(); serr != nil && err == nil {
		err = serr
	}

	d.gate.Lock()
	d.cb = nil
	d.gate.Unlock()

	d.logger.Info("device closed")
	return err
}
