// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/loader"
	"github.com/ik5/audmix/mixer"
)

// ErrClosed is returned by Engine methods after Close.
var ErrClosed = errors.New("engine closed")

// Engine owns a running device and everything that feeds it.
type Engine struct {
	dev     device.Device
	slot    *mixer.Slot
	reg     *mixer.Registry
	lib     *loader.Library
	desired audio.Spec
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens the device described by cfg and starts an engine on it.
func Open(cfg device.Config, logger *slog.Logger) (*Engine, error) {
	desired, err := cfg.Spec()
	if err != nil {
		return nil, err
	}

	dev, err := OpenDevice(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s device: %w", cfg.Backend, err)
	}

	eng, err := New(dev, desired, logger)
	if err != nil {
		return nil, errors.Join(err, dev.Close())
	}
	return eng, nil
}

// New starts an engine on an opened device. desired is the format that was
// asked for; the engine always runs in the format the device granted and
// logs a warning when the two differ. The engine takes ownership of dev.
func New(dev device.Device, desired audio.Spec, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "engine")

	granted := dev.Spec()
	if granted != desired {
		logger.Warn("device granted a different format",
			"device", dev.Name(),
			"desired", desired.String(),
			"granted", granted.String(),
		)
	}

	slot, err := mixer.NewSlot(granted, dev.Gate(), logger)
	if err != nil {
		return nil, err
	}
	lib, err := loader.NewLibrary(granted, nil, logger)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		dev:     dev,
		slot:    slot,
		reg:     slot.NewRegistry(),
		lib:     lib,
		desired: desired,
		logger:  logger,
	}
	e.reg.Bind()

	if err := dev.Start(slot.Mix); err != nil {
		e.reg.Close()
		_ = lib.Close()
		return nil, fmt.Errorf("starting device: %w", err)
	}

	logger.Info("engine started", "device", dev.Name(), "spec", granted.String())
	return e, nil
}

// Device returns the output device.
func (e *Engine) Device() device.Device { return e.dev }

// Spec returns the format the engine mixes in.
func (e *Engine) Spec() audio.Spec { return e.slot.Spec() }

// Desired returns the format that was requested when the engine was built.
func (e *Engine) Desired() audio.Spec { return e.desired }

// Slot returns the mixer slot the device calls.
func (e *Engine) Slot() *mixer.Slot { return e.slot }

// Registry returns the registry bound at start-up.
func (e *Engine) Registry() *mixer.Registry { return e.reg }

// Library returns the sound library.
func (e *Engine) Library() *loader.Library { return e.lib }

// Load decodes the file at path into the library as name.
func (e *Engine) Load(name, path string) (*mixer.Asset, error) {
	if e.isClosed() {
		return nil, ErrClosed
	}
	return e.lib.Load(name, path)
}

// LoadAll loads entries concurrently using up to workers goroutines.
func (e *Engine) LoadAll(ctx context.Context, entries []loader.Entry, workers int) error {
	if e.isClosed() {
		return ErrClosed
	}
	return e.lib.LoadAll(ctx, entries, workers)
}

// Play starts the named sound from the beginning in the active registry.
func (e *Engine) Play(name string, loop bool) (*mixer.Playback, error) {
	if e.isClosed() {
		return nil, ErrClosed
	}

	a, err := e.lib.MustGet(name)
	if err != nil {
		return nil, err
	}

	p, err := e.slot.Play(a, 0, loop, mixer.Playing)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("voice started", "sound", name, "loop", loop, "active", e.slot.HasActive())
	return p, nil
}

// Stats returns the mixer counters.
func (e *Engine) Stats() mixer.Stats { return e.slot.Stats() }

// Close stops the device, drops every voice and releases the library.
// It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	err := e.dev.Close()
	e.reg.Close()
	err = errors.Join(err, e.lib.Close())

	st := e.slot.Stats()
	e.logger.Info("engine stopped",
		"callbacks", st.Callbacks,
		"idle", st.Idle,
		"swept", st.Swept,
	)
	return err
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
